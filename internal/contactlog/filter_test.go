package contactlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name        string
		start       string
		end         string
		expectError bool
	}{
		{name: "valid range", start: "2017-03-01", end: "2017-03-31"},
		{name: "single day", start: "2017-03-01", end: "2017-03-01"},
		{name: "start after end", start: "2017-04-01", end: "2017-03-01", expectError: true},
		{name: "bad start format", start: "01-03-2017", end: "2017-03-31", expectError: true},
		{name: "bad end format", start: "2017-03-01", end: "March 31", expectError: true},
		{name: "empty start", start: "", end: "2017-03-31", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.start, tt.end)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start.Format(DateLayout))
			assert.Equal(t, tt.end, r.End.Format(DateLayout))
		})
	}
}

func TestDateRangeContains_Boundaries(t *testing.T) {
	r, err := ParseDateRange("2017-03-01", "2017-03-31")
	require.NoError(t, err)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "day before start", date: date(2017, time.February, 28), want: false},
		{name: "exactly start", date: date(2017, time.March, 1), want: true},
		{name: "mid range", date: date(2017, time.March, 15), want: true},
		{name: "exactly end", date: date(2017, time.March, 31), want: true},
		{name: "day after end", date: date(2017, time.April, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.date))
		})
	}
}

func TestDateRangeContains_IgnoresTimeOfDay(t *testing.T) {
	r, err := ParseDateRange("2017-03-01", "2017-03-31")
	require.NoError(t, err)

	// 23:59 on the end date is still inside the range
	assert.True(t, r.Contains(time.Date(2017, time.March, 31, 23, 59, 0, 0, time.UTC)))
	// Any time on the day after is outside
	assert.False(t, r.Contains(time.Date(2017, time.April, 1, 0, 0, 1, 0, time.UTC)))
}

func TestDateRangeContains_SingleDay(t *testing.T) {
	r, err := ParseDateRange("2017-03-15", "2017-03-15")
	require.NoError(t, err)

	assert.False(t, r.Contains(date(2017, time.March, 14)))
	assert.True(t, r.Contains(date(2017, time.March, 15)))
	assert.False(t, r.Contains(date(2017, time.March, 16)))
}

func TestFilter(t *testing.T) {
	table := &Table{
		Columns: []string{"Notes"},
		Records: []Record{
			{Worksheet: "Doe, Jane", Row: 2, Date: date(2017, time.February, 28), Details: []string{"before"}},
			{Worksheet: "Doe, Jane", Row: 3, Date: date(2017, time.March, 1), Details: []string{"first day"}},
			{Worksheet: "Smith, John", Row: 2, Date: date(2017, time.March, 31), Details: []string{"last day"}},
			{Worksheet: "Smith, John", Row: 3, Date: date(2017, time.April, 1), Details: []string{"after"}},
		},
	}

	r, err := ParseDateRange("2017-03-01", "2017-03-31")
	require.NoError(t, err)

	filtered := Filter(table, r)

	require.Len(t, filtered.Records, 2)
	assert.Equal(t, "first day", filtered.Records[0].Details[0])
	assert.Equal(t, "last day", filtered.Records[1].Details[0])
	assert.Equal(t, table.Columns, filtered.Columns)

	// Input table is untouched
	assert.Len(t, table.Records, 4)
}

func TestFilter_PreservesSourceOrder(t *testing.T) {
	table := &Table{
		Records: []Record{
			{Worksheet: "Doe, Jane", Row: 2, Date: date(2017, time.March, 20)},
			{Worksheet: "Doe, Jane", Row: 3, Date: date(2017, time.March, 5)},
			{Worksheet: "Smith, John", Row: 2, Date: date(2017, time.March, 10)},
		},
	}

	r, err := ParseDateRange("2017-03-01", "2017-03-31")
	require.NoError(t, err)

	filtered := Filter(table, r)

	require.Len(t, filtered.Records, 3)
	// Source order, not date order
	assert.Equal(t, 20, filtered.Records[0].Date.Day())
	assert.Equal(t, 5, filtered.Records[1].Date.Day())
	assert.Equal(t, 10, filtered.Records[2].Date.Day())
}

func TestFilter_Deterministic(t *testing.T) {
	table := &Table{
		Records: []Record{
			{Worksheet: "Doe, Jane", Row: 2, Date: date(2017, time.March, 2)},
			{Worksheet: "Smith, John", Row: 2, Date: date(2017, time.March, 3)},
		},
	}

	r, err := ParseDateRange("2017-03-01", "2017-03-31")
	require.NoError(t, err)

	first := Filter(table, r)
	second := Filter(table, r)

	assert.Equal(t, first.Records, second.Records)
}
