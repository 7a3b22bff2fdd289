package csvimport

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// RowError is a validation failure tied to one data row. Message is
// the operator-facing cause; the raw row travels with it so the error
// log preserves exactly what was uploaded.
type RowError struct {
	Line    int
	Message string
	Raw     map[string]string
}

// Error implements the error interface
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Message)
}

// NewRowError creates a RowError for a row
func NewRowError(row *Row, message string) *RowError {
	return &RowError{
		Line:    row.LineNumber,
		Message: message,
		Raw:     row.Data,
	}
}

// RawJSON serializes the original row for storage
func (e *RowError) RawJSON() string {
	b, err := json.Marshal(e.Raw)
	if err != nil {
		return "{}"
	}
	return string(b)
}
