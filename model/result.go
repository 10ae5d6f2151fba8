package model

import (
	"time"

	"github.com/google/uuid"
)

// DiffCounts is the counts-only reconciliation result.
type DiffCounts struct {
	NewCount     int `json:"new_rows_count"`
	MissingCount int `json:"non_existing_rows_count"`
}

// ResultKind describes which operation produced a stored result.
type ResultKind string

const (
	ResultKindMapping         ResultKind = "mapping"
	ResultKindNewRows         ResultKind = "new_rows"
	ResultKindNonExistingRows ResultKind = "non_existing_rows"
)

// Result is a derived table kept in memory under a handle until it is downloaded
// or used for script generation.
type Result struct {
	ID        int        `json:"id"`
	RID       uuid.UUID  `json:"rid"`
	Kind      ResultKind `json:"kind"`
	Name      string     `json:"name"`
	Table     *Table     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// ResultSummary is the JSON view of a stored result.
type ResultSummary struct {
	RID       uuid.UUID  `json:"rid"`
	Kind      ResultKind `json:"kind"`
	Name      string     `json:"name"`
	Rows      int        `json:"rows"`
	Columns   []string   `json:"columns"`
	CreatedAt time.Time  `json:"created_at"`
}

// Summary returns the JSON view of the result.
func (r *Result) Summary() ResultSummary {
	summary := ResultSummary{
		RID:       r.RID,
		Kind:      r.Kind,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		Columns:   []string{},
	}
	if r.Table != nil {
		summary.Rows = r.Table.Len()
		summary.Columns = r.Table.Columns
	}
	return summary
}
