// Package exporter writes the filtered interaction records to the report
// file. Write failures are unrecoverable; the caller aborts the run.
package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"wacreport/internal/config"
	"wacreport/internal/contactlog"
)

// ReportWriter produces report files in the configured output directory.
type ReportWriter struct {
	paths     *config.Paths
	sheetName string
}

// NewReportWriter creates a new report writer instance.
func NewReportWriter(paths *config.Paths, sheetName string) *ReportWriter {
	if sheetName == "" {
		sheetName = "Interactions"
	}
	return &ReportWriter{paths: paths, sheetName: sheetName}
}

// header returns the output column headers: the student and date columns
// followed by the pass-through detail columns.
func header(columns []string) []string {
	h := []string{"Student Name", "Contact Date"}
	return append(h, columns...)
}

// row flattens one record into output cells.
func row(rec contactlog.Record) []string {
	cells := []string{rec.Worksheet, rec.Date.Format(contactlog.DateLayout)}
	return append(cells, rec.Details...)
}

// WriteExcel writes the records to an xlsx report named for the report period
// and returns the written path.
func (w *ReportWriter) WriteExcel(table *contactlog.Table, r contactlog.DateRange, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := w.paths.GetReportPath(r.Start, r.End, "xlsx")

	logger.Info("Writing Excel report",
		slog.String("path", path),
		slog.Int("record_count", len(table.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), w.sheetName)

	headerCells := toInterfaces(header(table.Columns))
	if err := f.SetSheetRow(w.sheetName, "A1", &headerCells); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, rec := range table.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to compute cell for record %d: %w", i, err)
		}
		cells := toInterfaces(row(rec))
		if err := f.SetSheetRow(w.sheetName, cell, &cells); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report %s: %w", path, err)
	}

	return path, nil
}

func toInterfaces(cells []string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
