package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"

	"cashflow-api/internal/repositories"

	"github.com/google/uuid"
)

// ExportService renders a user's raw ledger as CSV. Exports operate on raw
// entries, never on aggregated views.
type ExportService struct {
	entryRepo repositories.EntryRepositoryInterface
	metrics   MetricsRecorderInterface
}

// NewExportService creates a new export service
func NewExportService(entryRepo repositories.EntryRepositoryInterface, metrics MetricsRecorderInterface) ExportServiceInterface {
	return &ExportService{
		entryRepo: entryRepo,
		metrics:   metrics,
	}
}

// ExportEntriesCSV writes every entry of the user as one CSV document,
// oldest occurrence first, with a fixed header row
func (s *ExportService) ExportEntriesCSV(userID uuid.UUID) ([]byte, error) {
	entries, err := s.entryRepo.AllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for export: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"id", "kind", "category", "amount", "note", "occurred_on", "created_at"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range entries {
		entry := &entries[i]
		record := []string{
			entry.ID.String(),
			entry.Kind,
			entry.Category,
			entry.Amount.StringFixed(2),
			entry.Note,
			entry.DateKey(),
			entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("export_generated", nil)
	}

	slog.Info("ledger exported",
		"user_id", userID,
		"entry_count", len(entries))

	return buf.Bytes(), nil
}
