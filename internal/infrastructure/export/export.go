package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	appdebt "github.com/debttrack/backend/internal/application/debt"
)

// Format identifies an export encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// IsValid checks if the format is supported
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatJSON
}

// ContentType returns the MIME type for HTTP responses
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

var csvHeader = []string{
	"id", "creditor_id", "debtor_id", "amount", "description",
	"status", "due_date", "paid_at", "created_at", "updated_at",
}

// DebtExporter renders debt lists for download
type DebtExporter struct{}

// NewDebtExporter creates a new DebtExporter
func NewDebtExporter() *DebtExporter {
	return &DebtExporter{}
}

// Export renders the debts in the requested format
func (e *DebtExporter) Export(debts []appdebt.DebtResponse, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return e.toCSV(debts)
	case FormatJSON:
		return e.toJSON(debts)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// Filename generates a timestamped download name for the format
func (e *DebtExporter) Filename(prefix string, format Format) string {
	timestamp := strings.NewReplacer(":", "-", ".", "-").
		Replace(time.Now().UTC().Format(time.RFC3339))
	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, format)
}

func (e *DebtExporter) toCSV(debts []appdebt.DebtResponse) ([]byte, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range debts {
		d := &debts[i]
		record := []string{
			d.ID.String(),
			d.CreditorID.String(),
			d.DebtorID.String(),
			d.Amount.StringFixed(2),
			d.Description,
			d.Status.String(),
			formatTime(d.DueDate),
			formatTime(d.PaidAt),
			d.CreatedAt.Format(time.RFC3339),
			d.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return []byte(buf.String()), nil
}

func (e *DebtExporter) toJSON(debts []appdebt.DebtResponse) ([]byte, error) {
	data, err := json.MarshalIndent(debts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal debts: %w", err)
	}
	return data, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
