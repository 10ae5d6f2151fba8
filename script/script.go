// Package script expands a text template once per table row.
//
// Placeholders are written as {NAME} where NAME is an identifier. They are found
// anywhere in the text, also inside other brace groups like `{"id": {ID}}`. Any
// other brace text, like "{ }", "{a-b}" or a lone "{", is copied as it is.
// Empty cells render as an empty string.
package script

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/valyala/fasttemplate"
)

// Placeholders are rewritten to these control bytes before the template is
// handed to fasttemplate, so braces of the text never act as tags.
const (
	startTag = "\x00"
	endTag   = "\x01"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Template is a parsed line template.
type Template struct {
	raw          string
	tmpl         *fasttemplate.Template
	placeholders []string
}

// Parse scans the template for placeholders. Templates holding the NUL or SOH
// control bytes are rejected.
func Parse(template string) (*Template, error) {
	if strings.ContainsAny(template, startTag+endTag) {
		return nil, &InvalidTemplateError{Err: fmt.Errorf("template contains a NUL or SOH control byte")}
	}

	placeholders := []string{}
	seen := map[string]bool{}
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			placeholders = append(placeholders, match[1])
		}
	}

	tagged := placeholderPattern.ReplaceAllString(template, startTag+"${1}"+endTag)
	tmpl, err := fasttemplate.NewTemplate(tagged, startTag, endTag)
	if err != nil {
		return nil, &InvalidTemplateError{Err: err}
	}

	return &Template{
		raw:          template,
		tmpl:         tmpl,
		placeholders: placeholders,
	}, nil
}

// Placeholders returns the placeholder names in order of first appearance.
func (t *Template) Placeholders() []string {
	placeholders := make([]string, len(t.placeholders))
	copy(placeholders, t.placeholders)
	return placeholders
}

func (t *Template) String() string {
	return t.raw
}

// Expand parses the template and expands it for every row of table.
func Expand(table *model.Table, template string, fieldMap model.FieldMap) (string, error) {
	t, err := Parse(template)
	if err != nil {
		return "", err
	}
	return t.Expand(table, fieldMap)
}

// Expand renders one block per row in row order and concatenates them.
// All placeholders are checked against fieldMap and table before any output is produced.
func (t *Template) Expand(table *model.Table, fieldMap model.FieldMap) (string, error) {
	if table == nil {
		table = &model.Table{}
	}

	bound := make(map[string]int, len(t.placeholders))
	for _, placeholder := range t.placeholders {
		if !fieldMap.Has(placeholder) {
			return "", &MissingTemplateFieldError{Placeholder: placeholder}
		}
		column := fieldMap.GetStringByKey(placeholder)
		idx := table.ColumnIndex(column)
		if idx < 0 {
			return "", &MissingColumnError{Placeholder: placeholder, Column: column}
		}
		bound[placeholder] = idx
	}

	var out strings.Builder
	for _, row := range table.Rows {
		_, err := t.tmpl.ExecuteFunc(&out, func(w io.Writer, tag string) (int, error) {
			return io.WriteString(w, Stringify(row[bound[tag]]))
		})
		if err != nil {
			return "", err
		}
	}

	return out.String(), nil
}

// Stringify renders a cell for substitution.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
