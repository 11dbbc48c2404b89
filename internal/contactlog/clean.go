package contactlog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// dateLayouts are the contact date formats seen in the source workbooks.
// Time-of-day, where present, is discarded downstream.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"Jan 2, 2006",
}

// Clean validates each raw record and returns the table of well-formed ones.
// A malformed record (missing required field, unparseable contact date) is
// excluded with exactly one WARNING naming its worksheet and row; the run
// always continues. Records are never rewritten, only kept or dropped.
func Clean(raw *RawTable, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}

	table := &Table{Columns: raw.Columns}

	for _, rr := range raw.Records {
		rec, reason := buildRecord(rr)
		if reason != "" {
			logger.Warn("Excluding malformed record",
				slog.String("worksheet", rr.Worksheet),
				slog.Int("row", rr.Row),
				slog.String("reason", reason))
			continue
		}

		table.Records = append(table.Records, rec)
	}

	logger.Info("Records cleaned",
		slog.Int("kept", len(table.Records)),
		slog.Int("excluded", len(raw.Records)-len(table.Records)))

	return table
}

// buildRecord validates a raw record and parses it into a Record, returning a
// non-empty reason when the record is malformed.
func buildRecord(rr RawRecord) (Record, string) {
	rr.Date = strings.TrimSpace(rr.Date)

	if err := validate.Struct(rr); err != nil {
		return Record{}, validationReason(err)
	}

	date, err := parseDate(rr.Date)
	if err != nil {
		return Record{}, fmt.Sprintf("unparseable contact date %q", rr.Date)
	}

	return Record{
		Worksheet: rr.Worksheet,
		Row:       rr.Row,
		Date:      date,
		Details:   rr.Details,
	}, ""
}

// validationReason maps a validator error onto the warning wording.
func validationReason(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Date":
			return "missing contact date"
		case "Worksheet":
			return "missing worksheet name"
		case "Row":
			return "row number before data region"
		}
	}
	return fmt.Sprintf("invalid record: %v", err)
}

// parseDate tries each known layout and normalizes to midnight UTC.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
