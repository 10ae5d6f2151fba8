package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func popup(class, title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="popup %s" onclick="this.remove()"><div class="popup-content"><h3>%s</h3><p>%s</p><button type="button">Close</button></div></div>`,
			class,
			templ.EscapeString(title),
			templ.EscapeString(message),
		)
		return err
	})
}

// PopupSuccess renders a dismissable info popup.
func PopupSuccess(title, message string) templ.Component {
	return popup("popup-success", title, message)
}

// PopupError renders a dismissable error popup.
func PopupError(title, message string) templ.Component {
	return popup("popup-error", title, message)
}
