package models

import (
	"time"

	"github.com/debttrack/backend/internal/domain/debt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtModel is the persistence model for the Debt domain entity.
type DebtModel struct {
	BaseModel
	CreditorID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	DebtorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"type:varchar(500)"`
	Status      debt.DebtStatus `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	DueDate     *time.Time
	PaidAt      *time.Time
}

// TableName returns the table name for GORM
func (DebtModel) TableName() string {
	return "debts"
}

// ToDomain converts the persistence model to a domain Debt entity.
func (m *DebtModel) ToDomain() *debt.Debt {
	return &debt.Debt{
		BaseEntity:  m.BaseModel.ToDomain(),
		CreditorID:  m.CreditorID,
		DebtorID:    m.DebtorID,
		Amount:      m.Amount,
		Description: m.Description,
		Status:      m.Status,
		DueDate:     m.DueDate,
		PaidAt:      m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Debt entity.
func (m *DebtModel) FromDomain(d *debt.Debt) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.CreditorID = d.CreditorID
	m.DebtorID = d.DebtorID
	m.Amount = d.Amount
	m.Description = d.Description
	m.Status = d.Status
	m.DueDate = d.DueDate
	m.PaidAt = d.PaidAt
}

// DebtModelFromDomain creates a new persistence model from a domain Debt entity.
func DebtModelFromDomain(d *debt.Debt) *DebtModel {
	m := &DebtModel{}
	m.FromDomain(d)
	return m
}
