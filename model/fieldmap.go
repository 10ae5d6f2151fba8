package model

import (
	"encoding/json"
	"errors"
	"sort"
)

// FieldMap maps template placeholder names to table column names.
type FieldMap map[string]string

// IdentityFieldMap maps every column to a placeholder of the same name.
func IdentityFieldMap(columns []string) FieldMap {
	fieldMap := FieldMap{}
	for _, column := range columns {
		fieldMap[column] = column
	}
	return fieldMap
}

func (f *FieldMap) GetStringByKey(key string) string {
	if value, ok := (*f)[key]; ok {
		return value
	}
	return ""
}

func (f *FieldMap) Has(key string) bool {
	if _, ok := (*f)[key]; ok {
		return true
	}
	return false
}

// Placeholders returns the placeholder names in sorted order.
func (f FieldMap) Placeholders() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Unmarshal accepts a FieldMap, a JSON string or JSON bytes. The previous
// content of f is always replaced, never merged.
func (f *FieldMap) Unmarshal(value interface{}) error {
	switch v := value.(type) {
	case FieldMap:
		*f = v
		return nil
	case map[string]string:
		*f = FieldMap(v)
		return nil
	case string:
		return f.unmarshalJSON([]byte(v))
	case []byte:
		return f.unmarshalJSON(v)
	default:
		return errors.New("type assertion to FieldMap, string or []byte failed")
	}
}

func (f *FieldMap) unmarshalJSON(data []byte) error {
	fieldMap := FieldMap{}
	if err := json.Unmarshal(data, &fieldMap); err != nil {
		return err
	}
	*f = fieldMap
	return nil
}
