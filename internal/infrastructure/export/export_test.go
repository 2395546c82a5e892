package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdebt "github.com/debttrack/backend/internal/application/debt"
	"github.com/debttrack/backend/internal/domain/debt"
)

func sampleDebts(t *testing.T) []appdebt.DebtResponse {
	t.Helper()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	return []appdebt.DebtResponse{
		{
			ID:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			CreditorID:  uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			DebtorID:    uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			Amount:      decimal.NewFromFloat(150.5),
			Description: "dinner, split two ways",
			Status:      debt.DebtStatusPending,
			DueDate:     &due,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:         uuid.MustParse("44444444-4444-4444-4444-444444444444"),
			CreditorID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			DebtorID:   uuid.MustParse("55555555-5555-5555-5555-555555555555"),
			Amount:     decimal.NewFromInt(20),
			Status:     debt.DebtStatusPaid,
			PaidAt:     &paid,
			CreatedAt:  created,
			UpdatedAt:  paid,
		},
	}
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, FormatCSV.IsValid())
	assert.True(t, FormatJSON.IsValid())
	assert.False(t, Format("xml").IsValid())
	assert.False(t, Format("").IsValid())
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/octet-stream", Format("xml").ContentType())
}

func TestDebtExporter_ExportCSV(t *testing.T) {
	e := NewDebtExporter()

	data, err := e.Export(sampleDebts(t), FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"id,creditor_id,debtor_id,amount,description,status,due_date,paid_at,created_at,updated_at",
		lines[0])
	assert.Contains(t, lines[1], "11111111-1111-1111-1111-111111111111")
	assert.Contains(t, lines[1], "150.50")
	assert.Contains(t, lines[1], `"dinner, split two ways"`, "descriptions with commas are quoted")
	assert.Contains(t, lines[1], "PENDING")
	assert.Contains(t, lines[1], "2025-07-01T00:00:00Z")
	assert.Contains(t, lines[2], "20.00")
	assert.Contains(t, lines[2], "PAID")
	assert.Contains(t, lines[2], "2025-06-15T09:30:00Z")
}

func TestDebtExporter_ExportCSVEmpty(t *testing.T) {
	e := NewDebtExporter()

	data, err := e.Export(nil, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1, "empty export still carries the header row")
}

func TestDebtExporter_ExportJSON(t *testing.T) {
	e := NewDebtExporter()
	debts := sampleDebts(t)

	data, err := e.Export(debts, FormatJSON)
	require.NoError(t, err)

	var decoded []appdebt.DebtResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, debts[0].ID, decoded[0].ID)
	assert.True(t, debts[0].Amount.Equal(decoded[0].Amount))
	assert.Equal(t, debt.DebtStatusPaid, decoded[1].Status)
	assert.Nil(t, decoded[1].DueDate)
}

func TestDebtExporter_ExportUnsupportedFormat(t *testing.T) {
	e := NewDebtExporter()

	_, err := e.Export(sampleDebts(t), Format("xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestDebtExporter_Filename(t *testing.T) {
	e := NewDebtExporter()

	name := e.Filename("debts", FormatCSV)
	assert.True(t, strings.HasPrefix(name, "debts_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.NotContains(t, name, ":", "filenames must be safe on every filesystem")
}
