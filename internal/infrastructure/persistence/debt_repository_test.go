package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/debttrack/backend/internal/domain/debt"
	"github.com/debttrack/backend/internal/domain/shared"
	"github.com/debttrack/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.UserModel{}, &models.DebtModel{})
	require.NoError(t, err)

	return db
}

func createTestDebt(t *testing.T, repo *GormDebtRepository, creditorID, debtorID uuid.UUID, amount string, createdAt time.Time) *debt.Debt {
	t.Helper()

	d := debt.NewDebt(creditorID, debtorID, decimal.RequireFromString(amount), "", nil)
	d.CreatedAt = createdAt
	d.UpdatedAt = createdAt
	require.NoError(t, repo.Create(context.Background(), d))
	return d
}

func TestGormDebtRepository_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	creditorID := uuid.New()
	debtorID := uuid.New()
	due := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	d := debt.NewDebt(creditorID, debtorID, decimal.RequireFromString("150.75"), "lunch", &due)

	err := repo.Create(ctx, d)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, found.ID)
	assert.Equal(t, creditorID, found.CreditorID)
	assert.Equal(t, debtorID, found.DebtorID)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("150.75")))
	assert.Equal(t, "lunch", found.Description)
	assert.Equal(t, debt.DebtStatusPending, found.Status)
	require.NotNil(t, found.DueDate)
	assert.Nil(t, found.PaidAt)
}

func TestGormDebtRepository_FindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDebtRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	d := createTestDebt(t, repo, uuid.New(), uuid.New(), "50.00", time.Now())

	newAmount := decimal.RequireFromString("75.25")
	newDescription := "updated"
	updated, err := repo.Update(ctx, d.ID, debt.UpdateFields{
		Amount:      &newAmount,
		Description: &newDescription,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(newAmount))
	assert.Equal(t, "updated", updated.Description)
	assert.Equal(t, debt.DebtStatusPending, updated.Status)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		due := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		updated, err := repo.Update(ctx, d.ID, debt.UpdateFields{DueDate: &due})
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(newAmount))
		assert.Equal(t, "updated", updated.Description)
		require.NotNil(t, updated.DueDate)
	})

	t.Run("missing debt", func(t *testing.T) {
		_, err := repo.Update(ctx, uuid.New(), debt.UpdateFields{Amount: &newAmount})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormDebtRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	d := createTestDebt(t, repo, uuid.New(), uuid.New(), "10.00", time.Now())

	require.NoError(t, repo.Delete(ctx, d.ID))

	_, err := repo.FindByID(ctx, d.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, d.ID), shared.ErrNotFound)
}

func TestGormDebtRepository_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	oldest := createTestDebt(t, repo, alice, bob, "10.00", base)
	middle := createTestDebt(t, repo, bob, alice, "20.00", base.Add(time.Hour))
	newest := createTestDebt(t, repo, alice, carol, "30.00", base.Add(2*time.Hour))
	createTestDebt(t, repo, bob, carol, "40.00", base.Add(3*time.Hour))

	t.Run("returns debts on either side, newest first", func(t *testing.T) {
		page, err := repo.FindByUser(ctx, alice, debt.Filters{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, page.Data, 3)
		assert.Equal(t, newest.ID, page.Data[0].ID)
		assert.Equal(t, middle.ID, page.Data[1].ID)
		assert.Equal(t, oldest.ID, page.Data[2].ID)
	})

	t.Run("paginates", func(t *testing.T) {
		page, err := repo.FindByUser(ctx, alice, debt.Filters{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.Limit)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Data, 1)
		assert.Equal(t, oldest.ID, page.Data[0].ID)
	})

	t.Run("filters by creditor", func(t *testing.T) {
		page, err := repo.FindByUser(ctx, alice, debt.Filters{CreditorID: &alice})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		for _, d := range page.Data {
			assert.Equal(t, alice, d.CreditorID)
		}
	})

	t.Run("filters by debtor", func(t *testing.T) {
		page, err := repo.FindByUser(ctx, alice, debt.Filters{DebtorID: &alice})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, middle.ID, page.Data[0].ID)
	})

	t.Run("filters by status", func(t *testing.T) {
		_, err := repo.MarkAsPaid(ctx, oldest.ID)
		require.NoError(t, err)

		paid := debt.DebtStatusPaid
		page, err := repo.FindByUser(ctx, alice, debt.Filters{Status: &paid})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, oldest.ID, page.Data[0].ID)

		pending := debt.DebtStatusPending
		page, err = repo.FindByUser(ctx, alice, debt.Filters{Status: &pending})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("empty page keeps shape", func(t *testing.T) {
		page, err := repo.FindByUser(ctx, uuid.New(), debt.Filters{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Data)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 0, page.TotalPages)
	})
}

func TestGormDebtRepository_MarkAsPaid(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	d := createTestDebt(t, repo, uuid.New(), uuid.New(), "99.50", time.Now())

	paid, err := repo.MarkAsPaid(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, debt.DebtStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	t.Run("already paid", func(t *testing.T) {
		_, err := repo.MarkAsPaid(ctx, d.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})

	t.Run("missing debt", func(t *testing.T) {
		_, err := repo.MarkAsPaid(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormDebtRepository_GetTotalsByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDebtRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	now := time.Now()
	createTestDebt(t, repo, alice, bob, "100.25", now)
	createTestDebt(t, repo, bob, alice, "50.50", now)
	settled := createTestDebt(t, repo, alice, bob, "25.75", now)
	createTestDebt(t, repo, bob, uuid.New(), "400.00", now)

	_, err := repo.MarkAsPaid(ctx, settled.ID)
	require.NoError(t, err)

	totals, err := repo.GetTotalsByUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.TotalPending)
	assert.Equal(t, int64(1), totals.TotalPaid)
	assert.True(t, totals.AmountPending.Equal(decimal.RequireFromString("150.75")),
		"got %s", totals.AmountPending)
	assert.True(t, totals.AmountPaid.Equal(decimal.RequireFromString("25.75")),
		"got %s", totals.AmountPaid)

	t.Run("user with no debts", func(t *testing.T) {
		totals, err := repo.GetTotalsByUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), totals.TotalPending)
		assert.True(t, totals.AmountPending.IsZero())
		assert.True(t, totals.AmountPaid.IsZero())
	})
}
