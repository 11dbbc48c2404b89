package contactlog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// headerScanLimit bounds how many leading rows are searched for the header.
// Some student sheets carry a title row or two above the column headers.
const headerScanLimit = 10

// LoadWorkbook reads the contact-log workbook and returns the raw rows of all
// student worksheets. Sheet order and row order are preserved. Only technical
// failures (unreadable file, unreadable sheet) return an error; data-quality
// problems are left for Clean.
func LoadWorkbook(path string, logger *slog.Logger) (*RawTable, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	var studentSheets []string
	for _, name := range f.GetSheetList() {
		if IsStudentSheet(name) {
			studentSheets = append(studentSheets, name)
		}
	}

	logger.Info("Student worksheets found",
		slog.Int("count", len(studentSheets)),
		slog.String("workbook", path))

	table := &RawTable{}

	for _, sheet := range studentSheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read worksheet %s: %w", sheet, err)
		}

		logger.Info("Reading worksheet",
			slog.String("worksheet", sheet),
			slog.Int("rows", len(rows)))

		headerRow, dateIdx := findHeaderRow(rows)
		if headerRow == -1 {
			logger.Warn("No contact date column found, skipping worksheet",
				slog.String("worksheet", sheet))
			continue
		}

		header := rows[headerRow]

		// The first student sheet defines the canonical detail columns;
		// later sheets are mapped by header name so column order may vary.
		if table.Columns == nil {
			for j, cell := range header {
				if j == dateIdx {
					continue
				}
				if strings.TrimSpace(cell) == "" {
					continue
				}
				table.Columns = append(table.Columns, strings.TrimSpace(cell))
			}
		}

		columnMap := mapColumns(header, table.Columns)

		for i := headerRow + 1; i < len(rows); i++ {
			row := rows[i]
			if isEmptyRow(row) {
				continue
			}

			rec := RawRecord{
				Worksheet: sheet,
				Row:       i + 1, // worksheet rows are 1-based
				Date:      cellAt(row, dateIdx),
				Details:   make([]string, len(table.Columns)),
			}
			for k, col := range table.Columns {
				rec.Details[k] = cellAt(row, columnMap[normalizeHeader(col)])
			}

			table.Records = append(table.Records, rec)
		}
	}

	logger.Info("Interactions loaded",
		slog.Int("count", len(table.Records)),
		slog.String("workbook", path))

	return table, nil
}

// findHeaderRow scans the leading rows for the column headers and returns the
// header row index together with the contact date column index, or (-1, -1).
func findHeaderRow(rows [][]string) (int, int) {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		if idx := findDateColumn(rows[i]); idx != -1 {
			return i, idx
		}
	}
	return -1, -1
}

// findDateColumn returns the index of the contact date column in a header
// row, preferring an explicit "Contact Date" header over a bare "Date".
func findDateColumn(header []string) int {
	fallback := -1
	for j, cell := range header {
		h := normalizeHeader(cell)
		if strings.Contains(h, "contact") && strings.Contains(h, "date") {
			return j
		}
		if fallback == -1 && h == "date" {
			fallback = j
		}
	}
	return fallback
}

// mapColumns maps each canonical column name to its index in this sheet's
// header row. Missing columns map to -1 and read as empty cells.
func mapColumns(header []string, columns []string) map[string]int {
	byName := make(map[string]int, len(header))
	for j, cell := range header {
		byName[normalizeHeader(cell)] = j
	}

	m := make(map[string]int, len(columns))
	for _, col := range columns {
		key := normalizeHeader(col)
		if idx, ok := byName[key]; ok {
			m[key] = idx
		} else {
			m[key] = -1
		}
	}
	return m
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
