package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps the body in the html page with htmx loaded.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><meta name="htmx-config" content='{"responseHandling":[{"code":"204","swap":false},{"code":".*","swap":true}]}'><link rel="stylesheet" href="/static/style.css"><script src="https://unpkg.com/htmx.org@2.0.4"></script></head><body id="body">`,
			templ.EscapeString(title))
		if err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</body></html>`)
		return err
	})
}

// CsrfField renders the hidden gorilla/csrf form field.
func CsrfField(token string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<input type="hidden" name="gorilla.csrf.Token" value="%s">`, templ.EscapeString(token))
		return err
	})
}
