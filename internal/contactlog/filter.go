package contactlog

import (
	"fmt"
	"time"
)

// DateLayout is the CLI date format.
const DateLayout = "2006-01-02"

// DateRange is an inclusive calendar date interval. Start and End are
// normalized to midnight UTC; only date components ever take part in
// comparisons.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses the two positional CLI arguments into a DateRange.
// Start must not be after end; start == end selects a single day.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q (want YYYY-MM-DD): %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q (want YYYY-MM-DD): %w", end, err)
	}
	if s.After(e) {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}

	return DateRange{
		Start: time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC),
		End:   time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC),
	}, nil
}

// Contains reports whether t falls inside the range, both ends inclusive.
// Time-of-day is ignored.
func (r DateRange) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Filter returns the records whose contact date lies within the range,
// preserving source order. The input table is not modified.
func Filter(table *Table, r DateRange) *Table {
	filtered := &Table{Columns: table.Columns}
	for _, rec := range table.Records {
		if r.Contains(rec.Date) {
			filtered.Records = append(filtered.Records, rec)
		}
	}
	return filtered
}
