package debt

import (
	"time"

	"github.com/debttrack/backend/internal/domain/debt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest is the input for creating a debt. CreditorID comes from
// the authenticated caller, never from the request body.
type CreateDebtRequest struct {
	DebtorID    uuid.UUID
	Amount      decimal.Decimal
	Description string
	DueDate     *time.Time
}

// UpdateDebtRequest is an optional-field set for partial updates.
// Nil means "leave unchanged".
type UpdateDebtRequest struct {
	Amount      *decimal.Decimal
	Description *string
	DueDate     *time.Time
}

// ListDebtsRequest narrows and paginates a debt listing
type ListDebtsRequest struct {
	Status     *debt.DebtStatus
	CreditorID *uuid.UUID
	DebtorID   *uuid.UUID
	Page       int
	Limit      int
}

// DebtResponse is the public projection of a debt
type DebtResponse struct {
	ID          uuid.UUID       `json:"id"`
	CreditorID  uuid.UUID       `json:"creditor_id"`
	DebtorID    uuid.UUID       `json:"debtor_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Status      debt.DebtStatus `json:"status"`
	DueDate     *time.Time      `json:"due_date"`
	PaidAt      *time.Time      `json:"paid_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PaginatedDebtsResponse is a page of debt projections with pagination metadata.
// This is also the payload cached by List.
type PaginatedDebtsResponse struct {
	Data       []DebtResponse `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// StatsResponse aggregates a user's debts per status
type StatsResponse struct {
	TotalPending  int64           `json:"total_pending"`
	TotalPaid     int64           `json:"total_paid"`
	AmountPending decimal.Decimal `json:"amount_pending"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

// ToDebtResponse converts a domain debt to its public projection
func ToDebtResponse(d *debt.Debt) DebtResponse {
	return DebtResponse{
		ID:          d.ID,
		CreditorID:  d.CreditorID,
		DebtorID:    d.DebtorID,
		Amount:      d.Amount,
		Description: d.Description,
		Status:      d.Status,
		DueDate:     d.DueDate,
		PaidAt:      d.PaidAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToPaginatedResponse converts a domain page to its public projection
func ToPaginatedResponse(p *debt.PaginatedDebts) *PaginatedDebtsResponse {
	data := make([]DebtResponse, len(p.Data))
	for i := range p.Data {
		data[i] = ToDebtResponse(&p.Data[i])
	}
	return &PaginatedDebtsResponse{
		Data:       data,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}
