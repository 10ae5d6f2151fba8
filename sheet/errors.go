package sheet

import (
	"errors"
	"fmt"
)

// ErrParseFailure indicates a workbook that could not be loaded as a table.
var ErrParseFailure = errors.New("parse failure")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ParseError wraps a workbook loading error with its file and sheet.
type ParseError struct {
	File  string
	Sheet string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("error reading Excel file %s (sheet %q): %v", e.File, e.Sheet, e.Err)
	}
	return fmt.Sprintf("error reading Excel file %s: %v", e.File, e.Err)
}

// Is matches ErrParseFailure in addition to the wrapped error.
func (e *ParseError) Is(target error) bool {
	return target == ErrParseFailure
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(file, sheet string, err error) *ParseError {
	return &ParseError{
		File:  file,
		Sheet: sheet,
		Err:   err,
	}
}
