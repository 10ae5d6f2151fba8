package screens

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/upload"
	"github.com/siherrmann/sheetReconciler/view/components"

	"github.com/a-h/templ"
)

const previewRows = 20

// Counts renders the reconcile counts.
func Counts(counts model.DiffCounts) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="results"><p>New rows in B: <span id="new-rows-count">%d</span></p><p>Rows of A missing in B: <span id="non-existing-rows-count">%d</span></p></div>`,
			counts.NewCount, counts.MissingCount)
		return err
	})
}

// MappingResult renders the summary and preview of a mapping result with its
// download link and the script form.
func MappingResult(result *model.Result) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rid := result.RID.String()
		_, err := fmt.Fprintf(w, `<div class="results"><p>Processed %d rows and %d columns.</p><a href="/api/mapping/download/%s" download>Download final_table.xlsx</a>`,
			result.Table.Len(), len(result.Table.Columns), rid)
		if err != nil {
			return err
		}
		if err := components.TablePreview(result.Table, previewRows).Render(ctx, w); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<form hx-post="/api/mapping/script/%s" hx-target="#script-result"><label>Template <textarea name="template" rows="4" placeholder="UPDATE drug SET pbs_code = '{PBS_CODE}' WHERE id = {MAPPED_SYNONYM_ID};"></textarea></label><label>Field map (JSON) <input type="text" name="field_map"></label><button type="submit">Generate script</button></form><div id="script-result"></div></div>`,
			rid)
		return err
	})
}

// Script renders a generated script.
func Script(script string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<pre class="script">%s</pre>`, templ.EscapeString(script))
		return err
	})
}

// Files renders the workspace files.
func Files(files []upload.File) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<ul class="files"><datalist id="stored-files">`)
		for _, file := range files {
			b.WriteString(`<option value="` + templ.EscapeString(file.Name) + `">`)
		}
		b.WriteString(`</datalist>`)
		if len(files) == 0 {
			b.WriteString(`<li>No files</li>`)
		}
		for _, file := range files {
			name := templ.EscapeString(file.Name)
			fmt.Fprintf(&b, `<li>%s (%d bytes) <button hx-post="/api/file/deleteFile/%s" hx-swap="none">Delete</button></li>`,
				name, file.Size, templ.EscapeString(url.PathEscape(file.Name)))
		}
		b.WriteString(`</ul>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Results renders the stored results.
func Results(results []model.ResultSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<ul class="stored-results">`)
		if len(results) == 0 {
			b.WriteString(`<li>No results</li>`)
		}
		for _, result := range results {
			rid := result.RID.String()
			fmt.Fprintf(&b, `<li>%s %s (%d rows, %s) <a href="/api/result/download/%s" download>Download</a> <button hx-post="/api/result/deleteResult/%s" hx-swap="none">Delete</button></li>`,
				templ.EscapeString(string(result.Kind)),
				templ.EscapeString(result.Name),
				result.Rows,
				result.CreatedAt.Format("15:04:05"),
				rid,
				rid,
			)
		}
		b.WriteString(`</ul>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Logs renders the log pane.
func Logs(lines []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<pre id="log-content">%s</pre>`, templ.EscapeString(strings.Join(lines, "\n")))
		return err
	})
}
