package handler

import (
	"time"

	appdebt "github.com/debttrack/backend/internal/application/debt"
	"github.com/debttrack/backend/internal/domain/debt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDebtBody is the request body for creating a debt
type CreateDebtBody struct {
	DebtorID    string          `json:"debtor_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	DueDate     *time.Time      `json:"due_date"`
}

func (b *CreateDebtBody) toRequest() appdebt.CreateDebtRequest {
	return appdebt.CreateDebtRequest{
		DebtorID:    uuid.MustParse(b.DebtorID),
		Amount:      b.Amount,
		Description: b.Description,
		DueDate:     b.DueDate,
	}
}

// UpdateDebtBody is the request body for partially updating a debt.
// Absent fields are left unchanged.
type UpdateDebtBody struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	DueDate     *time.Time       `json:"due_date"`
}

func (b *UpdateDebtBody) toRequest() appdebt.UpdateDebtRequest {
	return appdebt.UpdateDebtRequest{
		Amount:      b.Amount,
		Description: b.Description,
		DueDate:     b.DueDate,
	}
}

// ListDebtsQuery binds the listing query parameters
type ListDebtsQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING PAID"`
	CreditorID string `form:"creditor_id" binding:"omitempty,uuid"`
	DebtorID   string `form:"debtor_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,gte=1"`
	Limit      int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

func (q *ListDebtsQuery) toRequest() appdebt.ListDebtsRequest {
	req := appdebt.ListDebtsRequest{
		Page:  q.Page,
		Limit: q.Limit,
	}
	if q.Status != "" {
		status := debt.DebtStatus(q.Status)
		req.Status = &status
	}
	if q.CreditorID != "" {
		id := uuid.MustParse(q.CreditorID)
		req.CreditorID = &id
	}
	if q.DebtorID != "" {
		id := uuid.MustParse(q.DebtorID)
		req.DebtorID = &id
	}
	return req
}

// ExportDebtsQuery binds the export query parameters
type ExportDebtsQuery struct {
	ListDebtsQuery
	Format string `form:"format" binding:"omitempty,oneof=csv json"`
}
