// Package reconcile compares two tables by a shared key column. It computes
// anti-join counts and rows and an inner join projected onto a column subset.
//
// Key values are compared by raw value: int64(1), float64(1) and "1" are three
// different keys. A nil key never matches, not even another nil.
package reconcile

import (
	"fmt"

	"github.com/siherrmann/sheetReconciler/model"
)

// Which selects the side of an anti-join.
type Which int

const (
	// NewInB selects rows of B whose key does not appear in A.
	NewInB Which = iota
	// MissingFromB selects rows of A whose key does not appear in B.
	MissingFromB
)

func (w Which) String() string {
	switch w {
	case NewInB:
		return string(model.ResultKindNewRows)
	case MissingFromB:
		return string(model.ResultKindNonExistingRows)
	default:
		return "unknown"
	}
}

// ParseWhich accepts the download types of the web form ("new_rows", "non_existing_rows").
func ParseWhich(s string) (Which, error) {
	switch s {
	case string(model.ResultKindNewRows):
		return NewInB, nil
	case string(model.ResultKindNonExistingRows):
		return MissingFromB, nil
	default:
		return 0, fmt.Errorf("invalid download type: %s (must be new_rows or non_existing_rows)", s)
	}
}

// Reconciler holds two tables that were validated against a key column.
type Reconciler struct {
	a    *model.Table
	b    *model.Table
	key  string
	opts JoinOptions
}

// New validates the key column and returns a Reconciler for the pair.
func New(a, b *model.Table, key string, opts ...JoinOptions) (*Reconciler, error) {
	if err := ValidateKey(a, b, key); err != nil {
		return nil, err
	}
	options := DefaultJoinOptions()
	if len(opts) > 0 {
		options.Collision = opts[0].Collision
		if opts[0].LeftSuffix != "" {
			options.LeftSuffix = opts[0].LeftSuffix
		}
		if opts[0].RightSuffix != "" {
			options.RightSuffix = opts[0].RightSuffix
		}
	}
	if options.LeftSuffix == options.RightSuffix {
		return nil, fmt.Errorf("join suffixes must differ, both are %q", options.LeftSuffix)
	}
	return &Reconciler{a: a, b: b, key: key, opts: options}, nil
}

// ValidateKey fails with a *MissingKeyColumnError if either table lacks the key.
func ValidateKey(a, b *model.Table, key string) error {
	if a == nil || !a.HasColumn(key) {
		return &MissingKeyColumnError{Column: key, Side: "A", Table: tableName(a)}
	}
	if b == nil || !b.HasColumn(key) {
		return &MissingKeyColumnError{Column: key, Side: "B", Table: tableName(b)}
	}
	return nil
}

// DiffCounts counts the anti-join rows of both sides without materialising them.
func DiffCounts(a, b *model.Table, key string) (model.DiffCounts, error) {
	r, err := New(a, b, key)
	if err != nil {
		return model.DiffCounts{}, err
	}
	return r.DiffCounts(), nil
}

// ExtractRows returns the anti-join rows selected by which.
func ExtractRows(a, b *model.Table, key string, which Which) (*model.Table, error) {
	r, err := New(a, b, key)
	if err != nil {
		return nil, err
	}
	return r.ExtractRows(which)
}

// DiffCounts returns the number of rows only in B (new) and only in A (missing).
func (r *Reconciler) DiffCounts() model.DiffCounts {
	aKeys := keySet(r.a, r.key)
	bKeys := keySet(r.b, r.key)
	return model.DiffCounts{
		NewCount:     countUnmatched(r.b, r.key, aKeys),
		MissingCount: countUnmatched(r.a, r.key, bKeys),
	}
}

// ExtractRows returns the unmatched rows of the filtered table with its columns and order.
func (r *Reconciler) ExtractRows(which Which) (*model.Table, error) {
	var source, reference *model.Table
	switch which {
	case NewInB:
		source, reference = r.b, r.a
	case MissingFromB:
		source, reference = r.a, r.b
	default:
		return nil, fmt.Errorf("invalid row selection: %d", which)
	}

	refKeys := keySet(reference, r.key)
	idx := source.ColumnIndex(r.key)

	result := model.NewTable(which.String(), source.Columns...)
	for _, row := range source.Rows {
		if matches(row[idx], refKeys) {
			continue
		}
		copied := make(model.Row, len(row))
		copy(copied, row)
		result.Rows = append(result.Rows, copied)
	}
	return result, nil
}

func tableName(t *model.Table) string {
	if t == nil {
		return ""
	}
	return t.Name
}

// keyOf returns the map key of a cell. Nil cells have no key.
func keyOf(value any) (any, bool) {
	switch value.(type) {
	case nil:
		return nil, false
	case string, int, int64, float64, bool:
		return value, true
	default:
		return fmt.Sprintf("%T:%#v", value, value), true
	}
}

func keySet(t *model.Table, key string) map[any]struct{} {
	idx := t.ColumnIndex(key)
	set := make(map[any]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		if k, ok := keyOf(row[idx]); ok {
			set[k] = struct{}{}
		}
	}
	return set
}

func matches(value any, set map[any]struct{}) bool {
	k, ok := keyOf(value)
	if !ok {
		return false
	}
	_, found := set[k]
	return found
}

func countUnmatched(t *model.Table, key string, set map[any]struct{}) int {
	idx := t.ColumnIndex(key)
	count := 0
	for _, row := range t.Rows {
		if !matches(row[idx], set) {
			count++
		}
	}
	return count
}
