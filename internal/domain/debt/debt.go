package debt

import (
	"time"

	"github.com/debttrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtStatus represents the status of a debt
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "PENDING" // Outstanding, not yet settled
	DebtStatusPaid    DebtStatus = "PAID"    // Settled by the creditor
)

// IsValid checks if the status is a valid DebtStatus
func (s DebtStatus) IsValid() bool {
	return s == DebtStatusPending || s == DebtStatusPaid
}

// String returns the string representation of DebtStatus
func (s DebtStatus) String() string {
	return string(s)
}

// Amount bounds for a debt. Deployments may tighten these through
// configuration but never widen them.
var (
	MinAmount = decimal.RequireFromString("0.01")
	MaxAmount = decimal.RequireFromString("999999999.99")
)

// Debt represents a directional monetary obligation from a debtor to a
// creditor. The creditor is the only party allowed to mutate or settle it.
type Debt struct {
	shared.BaseEntity
	CreditorID  uuid.UUID
	DebtorID    uuid.UUID
	Amount      decimal.Decimal
	Description string
	Status      DebtStatus
	DueDate     *time.Time
	PaidAt      *time.Time
}

// NewDebt creates a new pending debt owed by debtorID to creditorID.
// It fills server-assigned defaults: fresh ID, PENDING status, nil PaidAt
// and current timestamps. Amount and party validation belong to the
// application service, not here.
func NewDebt(creditorID, debtorID uuid.UUID, amount decimal.Decimal, description string, dueDate *time.Time) *Debt {
	return &Debt{
		BaseEntity:  shared.NewBaseEntity(),
		CreditorID:  creditorID,
		DebtorID:    debtorID,
		Amount:      amount,
		Description: description,
		Status:      DebtStatusPending,
		DueDate:     dueDate,
	}
}

// IsPending returns true if the debt has not been settled yet
func (d *Debt) IsPending() bool {
	return d.Status == DebtStatusPending
}

// IsPaid returns true if the debt has been settled
func (d *Debt) IsPaid() bool {
	return d.Status == DebtStatusPaid
}

// CanBeModified reports whether the debt still accepts amount, description
// or due-date changes. Only pending debts do; PAID is terminal.
func (d *Debt) CanBeModified() bool {
	return d.IsPending()
}

// IsParty reports whether userID is the creditor or the debtor of this debt
func (d *Debt) IsParty(userID uuid.UUID) bool {
	return d.CreditorID == userID || d.DebtorID == userID
}

// ValidateAmount checks an amount against the allowed bounds.
// Bounds are inclusive: exactly MinAmount and exactly MaxAmount are accepted.
func ValidateAmount(amount, min, max decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Amount must be greater than 0")
	}
	if amount.LessThan(min) || amount.GreaterThan(max) {
		return shared.NewValidationError("Amount must be between " + min.String() + " and " + max.String())
	}
	return nil
}
