package model

import (
	"fmt"
)

// Row holds one value per table column, in column order.
// A value is one of string, int64, float64, bool or nil (empty cell).
type Row []any

// Table is an ordered set of rows over a fixed ordered list of named columns.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{
		Name:    name,
		Columns: cols,
		Rows:    []Row{},
	}
}

// ColumnIndex returns the position of the column or -1 if the table has no such column.
// Names are matched exactly.
func (t *Table) ColumnIndex(name string) int {
	for i, column := range t.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// AppendRow adds a row. It fails if the number of values does not match the columns.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table %q has %d columns", len(values), t.Name, len(t.Columns))
	}
	row := make(Row, len(values))
	copy(row, values)
	t.Rows = append(t.Rows, row)
	return nil
}

// Records returns the rows as column name to value maps, used for JSON previews.
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]any, len(t.Columns))
		for i, column := range t.Columns {
			record[column] = row[i]
		}
		records = append(records, record)
	}
	return records
}

// TableFromRecords builds a table from maps. Columns missing in a record are nil.
func TableFromRecords(name string, columns []string, records ...map[string]any) *Table {
	table := NewTable(name, columns...)
	for _, record := range records {
		row := make(Row, len(columns))
		for i, column := range columns {
			row[i] = record[column]
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
