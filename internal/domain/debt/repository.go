package debt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pagination defaults shared by the repository and the service layer
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filters narrows a FindByUser query. Nil pointer fields mean "not filtered".
type Filters struct {
	Status     *DebtStatus
	CreditorID *uuid.UUID
	DebtorID   *uuid.UUID
	Page       int
	Limit      int
}

// Normalize applies pagination defaults and caps the limit.
// Returns a copy; the receiver is not modified.
func (f Filters) Normalize() Filters {
	if f.Page <= 0 {
		f.Page = DefaultPage
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// UpdateFields is an explicit optional-field set for partial updates.
// A nil field is left untouched by the store; a non-nil field is written.
type UpdateFields struct {
	Amount      *decimal.Decimal
	Description *string
	DueDate     *time.Time
}

// IsEmpty reports whether no field is set
func (u UpdateFields) IsEmpty() bool {
	return u.Amount == nil && u.Description == nil && u.DueDate == nil
}

// PaginatedDebts is a page of debts plus pagination metadata
type PaginatedDebts struct {
	Data       []Debt
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// Totals aggregates count and amount per status for one user's debts
type Totals struct {
	TotalPending  int64
	TotalPaid     int64
	AmountPending decimal.Decimal
	AmountPaid    decimal.Decimal
}

// Repository is the persistence contract for debts. Implementations must
// return shared.ErrNotFound when a debt id does not exist. Concurrency
// control is delegated to the backing store: MarkAsPaid must be a single
// atomic update guarded by the PENDING status.
type Repository interface {
	Create(ctx context.Context, d *Debt) error
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Debt, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByUser returns debts where userID is creditor or debtor, further
	// narrowed by filters, ordered most recent first.
	FindByUser(ctx context.Context, userID uuid.UUID, filters Filters) (*PaginatedDebts, error)

	// MarkAsPaid transitions a pending debt to PAID and stamps PaidAt.
	// Returns the updated debt.
	MarkAsPaid(ctx context.Context, id uuid.UUID) (*Debt, error)

	GetTotalsByUser(ctx context.Context, userID uuid.UUID) (*Totals, error)
}
