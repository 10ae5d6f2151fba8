package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingKeyColumn indicates the key column is not declared by one of the tables.
var ErrMissingKeyColumn = errors.New("missing key column")

// ErrMissingRequiredColumn indicates a required output column is absent after the join.
var ErrMissingRequiredColumn = errors.New("missing required column")

// ErrNoMappedColumns indicates no joined column starts with the mapped prefix.
var ErrNoMappedColumns = errors.New("no mapped columns")

// MissingKeyColumnError names the table lacking the key column.
type MissingKeyColumnError struct {
	Column string
	Side   string // "A" or "B"
	Table  string // table name, may be empty
}

func (e *MissingKeyColumnError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("key column '%s' not found in file %s (%s)", e.Column, e.Side, e.Table)
	}
	return fmt.Sprintf("key column '%s' not found in file %s", e.Column, e.Side)
}

func (e *MissingKeyColumnError) Unwrap() error {
	return ErrMissingKeyColumn
}

// MissingRequiredColumnError lists the joined columns that were available.
type MissingRequiredColumnError struct {
	Column    string
	Available []string
}

func (e *MissingRequiredColumnError) Error() string {
	return fmt.Sprintf("required column '%s' not found after join (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

func (e *MissingRequiredColumnError) Unwrap() error {
	return ErrMissingRequiredColumn
}

// NoMappedColumnsError carries the prefix that matched nothing.
type NoMappedColumnsError struct {
	Prefix string
}

func (e *NoMappedColumnsError) Error() string {
	return fmt.Sprintf("no columns starting with '%s' found after join", e.Prefix)
}

func (e *NoMappedColumnsError) Unwrap() error {
	return ErrNoMappedColumns
}
