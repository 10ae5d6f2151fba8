package reconcile

import (
	"fmt"
	"strings"

	"github.com/siherrmann/sheetReconciler/model"
)

// CollisionPolicy decides how a non-key column present in both tables is joined.
type CollisionPolicy int

const (
	// KeepLeft keeps the column of table A under its name and drops the one of table B.
	KeepLeft CollisionPolicy = iota
	// SuffixBoth keeps both columns, renamed with LeftSuffix and RightSuffix.
	SuffixBoth
)

// ParseCollisionPolicy maps "keep_left" and "suffix_both" to a policy. An empty
// name selects KeepLeft.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "keep_left", "keep-left":
		return KeepLeft, nil
	case "suffix_both", "suffix-both":
		return SuffixBoth, nil
	}
	return KeepLeft, fmt.Errorf("unknown collision policy %q, use keep_left or suffix_both", name)
}

func (p CollisionPolicy) String() string {
	if p == SuffixBoth {
		return "suffix_both"
	}
	return "keep_left"
}

// JoinOptions configures InnerJoinProject.
type JoinOptions struct {
	Collision   CollisionPolicy
	LeftSuffix  string
	RightSuffix string
}

// DefaultJoinOptions keeps the left column on collisions. The suffixes are used
// with SuffixBoth only.
func DefaultJoinOptions() JoinOptions {
	return JoinOptions{
		Collision:   KeepLeft,
		LeftSuffix:  "_x",
		RightSuffix: "_y",
	}
}

// joinColumn points a joined column at its source table and position.
type joinColumn struct {
	name  string
	right bool
	index int
}

// InnerJoinProject joins a and b on key with the default options and projects the
// result onto the columns starting with mappedPrefix followed by requiredColumns.
func InnerJoinProject(a, b *model.Table, key, mappedPrefix string, requiredColumns []string) (*model.Table, error) {
	r, err := New(a, b, key)
	if err != nil {
		return nil, err
	}
	return r.InnerJoinProject(mappedPrefix, requiredColumns)
}

// JoinedColumns returns the column names of the inner join before projection:
// the key, then the non-key columns of A, then those of B.
func (r *Reconciler) JoinedColumns() []string {
	layout := r.joinLayout()
	names := make([]string, len(layout))
	for i, column := range layout {
		names[i] = column.name
	}
	return names
}

// InnerJoinProject pairs every row of A with every row of B sharing a non-nil key,
// in A's row order and then B's row order. The joined rows are projected, exact
// duplicates are dropped and the first occurrence is kept.
func (r *Reconciler) InnerJoinProject(mappedPrefix string, requiredColumns []string) (*model.Table, error) {
	layout := r.joinLayout()
	selected, err := selectColumns(layout, mappedPrefix, requiredColumns)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(selected))
	for i, column := range selected {
		names[i] = column.name
	}
	result := model.NewTable("final_table", names...)

	aKey := r.a.ColumnIndex(r.key)
	bKey := r.b.ColumnIndex(r.key)
	index := buildJoinIndex(r.b, bKey)
	seen := map[string]struct{}{}

	for _, left := range r.a.Rows {
		k, ok := keyOf(left[aKey])
		if !ok {
			continue
		}
		for _, pos := range index[k] {
			right := r.b.Rows[pos]
			row := make(model.Row, len(selected))
			for i, column := range selected {
				if column.right {
					row[i] = right[column.index]
				} else {
					row[i] = left[column.index]
				}
			}

			fingerprint := rowFingerprint(row)
			if _, dup := seen[fingerprint]; dup {
				continue
			}
			seen[fingerprint] = struct{}{}
			result.Rows = append(result.Rows, row)
		}
	}

	return result, nil
}

func (r *Reconciler) joinLayout() []joinColumn {
	layout := []joinColumn{{name: r.key, index: r.a.ColumnIndex(r.key)}}

	for i, name := range r.a.Columns {
		if name == r.key {
			continue
		}
		if r.opts.Collision == SuffixBoth && r.b.HasColumn(name) {
			name += r.opts.LeftSuffix
		}
		layout = append(layout, joinColumn{name: name, index: i})
	}

	for i, name := range r.b.Columns {
		if name == r.key {
			continue
		}
		if r.a.HasColumn(name) {
			if r.opts.Collision == KeepLeft {
				continue
			}
			name += r.opts.RightSuffix
		}
		layout = append(layout, joinColumn{name: name, right: true, index: i})
	}

	return layout
}

// selectColumns keeps the prefix columns in joined order followed by the required
// columns in the given order. A required column that also matches the prefix is
// not repeated.
func selectColumns(layout []joinColumn, mappedPrefix string, requiredColumns []string) ([]joinColumn, error) {
	selected := []joinColumn{}
	picked := map[string]bool{}
	for _, column := range layout {
		if strings.HasPrefix(column.name, mappedPrefix) {
			selected = append(selected, column)
			picked[column.name] = true
		}
	}
	if len(selected) == 0 {
		return nil, &NoMappedColumnsError{Prefix: mappedPrefix}
	}

	for _, name := range requiredColumns {
		column, ok := findColumn(layout, name)
		if !ok {
			return nil, &MissingRequiredColumnError{Column: name, Available: columnNames(layout)}
		}
		if picked[name] {
			continue
		}
		selected = append(selected, column)
		picked[name] = true
	}

	return selected, nil
}

func findColumn(layout []joinColumn, name string) (joinColumn, bool) {
	for _, column := range layout {
		if column.name == name {
			return column, true
		}
	}
	return joinColumn{}, false
}

func columnNames(layout []joinColumn) []string {
	names := make([]string, len(layout))
	for i, column := range layout {
		names[i] = column.name
	}
	return names
}

// buildJoinIndex maps each non-nil key of t to its row positions in order.
func buildJoinIndex(t *model.Table, keyIdx int) map[any][]int {
	index := make(map[any][]int, len(t.Rows))
	for pos, row := range t.Rows {
		if k, ok := keyOf(row[keyIdx]); ok {
			index[k] = append(index[k], pos)
		}
	}
	return index
}

// rowFingerprint encodes type and value of every cell so equal rows share a fingerprint.
func rowFingerprint(row model.Row) string {
	var b strings.Builder
	for _, value := range row {
		fmt.Fprintf(&b, "%T\x1f%#v\x1e", value, value)
	}
	return b.String()
}
