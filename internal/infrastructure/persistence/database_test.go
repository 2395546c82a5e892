package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/debttrack/backend/internal/domain/debt"
)

// newMockDatabase creates a Database instance backed by a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()

		assert.NoError(t, db.Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping failure surfaces the error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(assert.AnError)

		assert.Error(t, db.Ping())
	})
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGormDebtRepository_MarkAsPaidSQL verifies the settle path runs a single
// status-guarded UPDATE rather than a read-modify-write.
func TestGormDebtRepository_MarkAsPaidSQL(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	repo := NewGormDebtRepository(db.DB)
	id := uuid.New()
	now := time.Now()

	mock.ExpectExec(`UPDATE "debts" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT \* FROM "debts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "creditor_id", "debtor_id",
			"amount", "description", "status", "due_date", "paid_at",
		}).AddRow(
			id.String(), now, now, uuid.New().String(), uuid.New().String(),
			"25.00", "", "PAID", nil, now,
		))

	paid, err := repo.MarkAsPaid(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, debt.DebtStatusPaid, paid.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
