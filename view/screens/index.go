package screens

import (
	"context"
	"fmt"
	"io"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/upload"
	"github.com/siherrmann/sheetReconciler/view/components"

	"github.com/a-h/templ"
)

var downloadTypes = []model.KeyValuePair{
	{Key: string(model.ResultKindNewRows), Value: "Download new rows"},
	{Key: string(model.ResultKindNonExistingRows), Value: "Download non-existing rows"},
}

// Index renders the form page: reconcile two workbooks, copy mappings of a
// copier workbook, the workspace files, stored results and the log pane.
func Index(csrfToken string, files []upload.File, results []model.ResultSummary, logs []string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<main><h1>Sheet Reconciler</h1>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section><h2>Compare workbooks</h2><form id="upload-form" method="post" action="/api/reconcile/download" enctype="multipart/form-data">`); err != nil {
			return err
		}
		if err := components.CsrfField(csrfToken).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label>File A <input type="file" name="file_a" accept=".xlsx"></label><label>Sheet A <input type="text" name="sheet_a"></label><label>File B <input type="file" name="file_b" accept=".xlsx"></label><label>Sheet B <input type="text" name="sheet_b"></label><label>Key column <input type="text" name="key_column" required></label><button type="button" hx-post="/api/reconcile/process" hx-encoding="multipart/form-data" hx-target="#reconcile-result">Process</button>`); err != nil {
			return err
		}
		for _, downloadType := range downloadTypes {
			if _, err := fmt.Fprintf(w, `<button type="submit" name="download_type" value="%s">%s</button>`,
				templ.EscapeString(downloadType.Key), templ.EscapeString(downloadType.Value)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</form><div id="reconcile-result"></div></section>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section><h2>Copy mappings</h2><form hx-post="/api/mapping/process" hx-encoding="multipart/form-data" hx-target="#mapping-result">`); err != nil {
			return err
		}
		if err := components.CsrfField(csrfToken).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label>Copier workbook <input type="file" name="file" accept=".xlsx"></label><label>or stored file <input type="text" name="file_name" list="stored-files"></label><button type="submit">Process files</button></form><div id="mapping-result"></div></section>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<section><h2>Files</h2><form hx-post="/api/file/uploadFiles" hx-encoding="multipart/form-data" hx-swap="none"><input type="file" name="files" multiple><button type="submit">Upload</button></form><div id="files" hx-get="/files" hx-trigger="reloadFiles from:body">`); err != nil {
			return err
		}
		if err := Files(files).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div></section><section><h2>Results</h2><div id="results" hx-get="/results" hx-trigger="reloadResults from:body">`); err != nil {
			return err
		}
		if err := Results(results).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div></section><section><h2>Logs</h2><div id="logs" hx-get="/logs" hx-trigger="every 2s">`); err != nil {
			return err
		}
		if err := Logs(logs).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></section></main>`)
		return err
	})

	return components.Layout("Sheet Reconciler", body)
}
