package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkordes/tripscout/internal/domain"
)

// exportHeader is the first line of the CSV export.
var exportHeader = []string{
	"trip_id", "trip_name", "date", "type", "status", "people",
	"category", "custom", "planned", "actual", "currency",
}

// ExportService flattens every trip into per-category rows.
type ExportService struct {
	store ExportStore
}

// NewExportService constructs an ExportService over the given store.
func NewExportService(s ExportStore) *ExportService {
	return &ExportService{store: s}
}

// Export returns one row per trip per category in trip insertion order.
// Always returns a non-nil slice.
func (s *ExportService) Export(_ context.Context) []domain.ExportRow {
	rows := []domain.ExportRow{}
	for _, trip := range s.store.Trips() {
		rows = append(rows, domain.ExportRows(trip)...)
	}
	return rows
}

// WriteCSV writes the export to w with amounts fixed to the configured
// decimal places.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	settings := s.store.Settings()
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("service.ExportService.WriteCSV: header: %w", err)
	}
	for _, r := range s.Export(ctx) {
		record := []string{
			r.TripID,
			r.TripName,
			r.TripDate,
			string(r.TripType),
			string(r.TripStatus),
			strconv.Itoa(r.NumberOfPeople),
			r.Category,
			strconv.FormatBool(r.Custom),
			settings.Fixed(r.Planned),
			settings.Fixed(r.Actual),
			settings.Currency,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("service.ExportService.WriteCSV: row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("service.ExportService.WriteCSV: flush: %w", err)
	}
	return nil
}
