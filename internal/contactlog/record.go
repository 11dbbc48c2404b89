// Package contactlog implements the core of the reporting pipeline: loading
// student interaction rows out of the contact-log workbook, validating and
// cleaning them, and filtering them to the requested report period.
package contactlog

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator for record checks.
var validate = validator.New()

// RawRecord is one worksheet row exactly as read from the workbook, before
// validation. Row is the 1-based worksheet row number and identifies the
// record in warnings. Rows below the header start at 2.
type RawRecord struct {
	Worksheet string `validate:"required"`
	Row       int    `validate:"min=2"`
	Date      string `validate:"required"`
	Details   []string
}

// Record is a validated interaction row. Details are carried through from the
// source row unmodified, aligned to Table.Columns.
type Record struct {
	Worksheet string
	Row       int
	Date      time.Time
	Details   []string
}

// RawTable holds the rows loaded from the workbook in source order: student
// worksheets in workbook order, rows in worksheet order.
type RawTable struct {
	Columns []string
	Records []RawRecord
}

// Table holds validated records, still in source order.
type Table struct {
	Columns []string
	Records []Record
}

// IsStudentSheet reports whether a worksheet name refers to a student.
// Student sheets are named "Last, First"; summary and template sheets are not.
func IsStudentSheet(name string) bool {
	return strings.Contains(name, ",")
}
