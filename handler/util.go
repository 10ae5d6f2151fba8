package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/siherrmann/sheetReconciler/reconcile"
	"github.com/siherrmann/sheetReconciler/script"
	"github.com/siherrmann/sheetReconciler/sheet"
	"github.com/siherrmann/sheetReconciler/view/components"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v5"
)

func render(ctx *echo.Context, t templ.Component, status ...int) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := t.Render(ctx.Request().Context(), buf); err != nil {
		return err
	}

	if len(status) > 0 {
		return ctx.HTML(status[0], buf.String())
	}
	return ctx.HTML(http.StatusOK, buf.String())
}

func renderPopup(c *echo.Context, component templ.Component, status ...int) error {
	c.Response().Header().Add("HX-Retarget", "#body")
	c.Response().Header().Add("HX-Reswap", "beforeend")
	return render(c, component, status...)
}

func renderHTTP(writer http.ResponseWriter, t templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := t.Render(context.Background(), buf); err != nil {
		return err
	}

	writer.WriteHeader(http.StatusOK)
	fmt.Fprint(writer, buf.String())
	return nil
}

func renderPopupHTTP(writer http.ResponseWriter, component templ.Component) error {
	writer.Header().Add("HX-Retarget", "#body")
	writer.Header().Add("HX-Reswap", "beforeend")
	return renderHTTP(writer, component)
}

func isHxRequest(c *echo.Context) bool {
	return c.Request().Header.Get("HX-Request") != ""
}

func renderPopupOrJson(c *echo.Context, status int, value ...any) error {
	// No value to render
	if len(value) == 0 {
		return c.NoContent(status)
	}

	// If HTMX request, render popup
	if isHxRequest(c) {
		messageStr := ""
		if messageTemp, ok := value[0].(string); ok {
			messageStr = messageTemp
		} else {
			messageStr = fmt.Sprintf("%v", value[0])
		}

		if status >= 200 && status < 300 {
			return renderPopup(c, components.PopupSuccess("Info", messageStr))
		} else {
			return renderPopup(c, components.PopupError("Error", messageStr))
		}
	}

	// Otherwise, return JSON with message if first value is string
	values := map[string]any{}
	for i, v := range value {
		if message, ok := value[0].(string); ok && i == 0 {
			values["message"] = message
		} else {
			values["value"] = v
		}
	}

	return c.JSON(status, values)
}

// renderErrorOrJson answers with an error popup for HTMX requests and with
// {"error": message} otherwise.
func renderErrorOrJson(c *echo.Context, status int, message string) error {
	if isHxRequest(c) {
		return renderPopup(c, components.PopupError("Error", message))
	}
	return c.JSON(status, map[string]string{"error": message})
}

// errorStatus maps input and domain errors to 400 and everything else to 500.
func errorStatus(err error) int {
	var input *inputError
	switch {
	case errors.As(err, &input),
		errors.Is(err, sheet.ErrParseFailure),
		errors.Is(err, reconcile.ErrMissingKeyColumn),
		errors.Is(err, reconcile.ErrMissingRequiredColumn),
		errors.Is(err, reconcile.ErrNoMappedColumns),
		errors.Is(err, script.ErrMissingTemplateField),
		errors.Is(err, script.ErrMissingColumn),
		errors.Is(err, script.ErrInvalidTemplate):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// inputError marks a malformed request.
type inputError struct {
	message string
}

func (e *inputError) Error() string {
	return e.message
}

func newInputError(format string, args ...any) error {
	return &inputError{message: fmt.Sprintf(format, args...)}
}
