package model

import "fmt"

type KeyValuePair struct {
	Key   string
	Value string
}

// CellString renders a cell for display. Empty cells render as an empty string.
func CellString(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}
