package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/debttrack/backend/internal/domain/debt"
	"github.com/debttrack/backend/internal/domain/shared"
	"github.com/debttrack/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDebtRepository implements debt.Repository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// Create persists a new debt
func (r *GormDebtRepository) Create(ctx context.Context, d *debt.Debt) error {
	model := models.DebtModelFromDomain(d)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a debt by its ID
func (r *GormDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update applies a partial update and returns the updated debt
func (r *GormDebtRepository) Update(ctx context.Context, id uuid.UUID, fields debt.UpdateFields) (*debt.Debt, error) {
	updates := map[string]any{"updated_at": time.Now()}
	if fields.Amount != nil {
		updates["amount"] = *fields.Amount
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.DueDate != nil {
		updates["due_date"] = *fields.DueDate
	}

	result := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete removes a debt by its ID
func (r *GormDebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DebtModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByUser returns a page of debts where userID is creditor or debtor
func (r *GormDebtRepository) FindByUser(ctx context.Context, userID uuid.UUID, filters debt.Filters) (*debt.PaginatedDebts, error) {
	filters = filters.Normalize()

	query := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Where("creditor_id = ? OR debtor_id = ?", userID, userID)

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CreditorID != nil {
		query = query.Where("creditor_id = ?", *filters.CreditorID)
	}
	if filters.DebtorID != nil {
		query = query.Where("debtor_id = ?", *filters.DebtorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var debtModels []models.DebtModel
	offset := (filters.Page - 1) * filters.Limit
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(filters.Limit).
		Find(&debtModels).Error; err != nil {
		return nil, err
	}

	data := make([]debt.Debt, len(debtModels))
	for i := range debtModels {
		data[i] = *debtModels[i].ToDomain()
	}

	totalPages := int(total) / filters.Limit
	if int(total)%filters.Limit > 0 {
		totalPages++
	}

	return &debt.PaginatedDebts{
		Data:       data,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

// MarkAsPaid transitions a pending debt to PAID in a single guarded update.
// The status guard makes concurrent settle attempts race safely: exactly one
// update wins, the rest observe an already-paid debt.
func (r *GormDebtRepository) MarkAsPaid(ctx context.Context, id uuid.UUID) (*debt.Debt, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Where("id = ? AND status = ?", id, debt.DebtStatusPending).
		Updates(map[string]any{
			"status":     debt.DebtStatusPaid,
			"paid_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing debt from one already settled
		existing, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing.IsPaid() {
			return nil, shared.NewValidationError("The debt is already marked as paid")
		}
		return nil, shared.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// totalsRow receives one aggregate row of GetTotalsByUser
type totalsRow struct {
	Count int64
	Sum   decimal.Decimal
}

// GetTotalsByUser aggregates count and amount per status for one user
func (r *GormDebtRepository) GetTotalsByUser(ctx context.Context, userID uuid.UUID) (*debt.Totals, error) {
	pending, err := r.totalsForStatus(ctx, userID, debt.DebtStatusPending)
	if err != nil {
		return nil, err
	}
	paid, err := r.totalsForStatus(ctx, userID, debt.DebtStatusPaid)
	if err != nil {
		return nil, err
	}

	return &debt.Totals{
		TotalPending:  pending.Count,
		TotalPaid:     paid.Count,
		AmountPending: pending.Sum,
		AmountPaid:    paid.Sum,
	}, nil
}

func (r *GormDebtRepository) totalsForStatus(ctx context.Context, userID uuid.UUID, status debt.DebtStatus) (*totalsRow, error) {
	var row totalsRow
	err := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS sum").
		Where("(creditor_id = ? OR debtor_id = ?) AND status = ?", userID, userID, status).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Ensure GormDebtRepository implements debt.Repository
var _ debt.Repository = (*GormDebtRepository)(nil)
