package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"wacreport/internal/contactlog"
)

// WriteCSV writes the records to a CSV report named for the report period and
// returns the written path. A UTF-8 BOM is prepended so Excel opens the file
// with the right encoding.
func (w *ReportWriter) WriteCSV(table *contactlog.Table, r contactlog.DateRange, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := w.paths.GetReportPath(r.Start, r.End, "csv")

	logger.Info("Writing CSV report",
		slog.String("path", path),
		slog.Int("record_count", len(table.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(header(table.Columns)); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	for i, rec := range table.Records {
		if err := writer.Write(row(rec)); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report %s: %w", path, err)
	}

	return path, nil
}
