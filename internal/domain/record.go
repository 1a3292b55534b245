package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = errors.New("input not found")

	// ErrDecode is returned when the input cannot be read as delimited UTF-8 text.
	ErrDecode = errors.New("decode input")

	// ErrMissingField is returned when a consumer reads a key absent from a Record.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidCoordinate is returned when a coordinate must be numeric but is not.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// Field names of the SFPD incident export used by the consumers in this package.
const (
	FieldCategory  = "Category"
	FieldDescript  = "Descript"
	FieldDayOfWeek = "DayOfWeek"
	FieldDate      = "Date"
	FieldX         = "X"
	FieldY         = "Y"
)

// Record is one parsed row keyed by header field name.
type Record map[string]string

// Get returns the value stored under field, or ErrMissingField if the row
// did not carry that column.
func (r Record) Get(field string) (string, error) {
	v, ok := r[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, field)
	}
	return v, nil
}

// Dataset is the ordered result of one parse. Records are in source row order.
type Dataset struct {
	Header  []string
	Records []Record
}

// Len returns the number of data rows.
func (d Dataset) Len() int {
	return len(d.Records)
}
