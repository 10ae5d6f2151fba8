package components

import (
	"context"
	"io"
	"strings"

	"github.com/siherrmann/sheetReconciler/model"

	"github.com/a-h/templ"
)

// TablePreview renders the header and up to limit rows of a table.
func TablePreview(t *model.Table, limit int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<table class="preview"><thead><tr>`)
		for _, column := range t.Columns {
			b.WriteString("<th>" + templ.EscapeString(column) + "</th>")
		}
		b.WriteString("</tr></thead><tbody>")
		for i, row := range t.Rows {
			if i >= limit {
				break
			}
			b.WriteString("<tr>")
			for _, value := range row {
				b.WriteString("<td>" + templ.EscapeString(model.CellString(value)) + "</td>")
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
