package middleware

import (
	"net/http"

	"github.com/siherrmann/sheetReconciler/handler"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v5"
)

const (
	// CsrfCookieName holds the csrf token of the web shell.
	CsrfCookieName = "sheet_reconciler_csrf"
	// HeaderCsrfToken lets htmx requests send the token without a form field.
	HeaderCsrfToken = "X-CSRF-Token"
)

// CsrfMiddleware issues the csrf cookie on the web shell views and rejects unsafe
// requests without a matching token through handler.HandleCSRFErrorView.
func (r Middleware) CsrfMiddleware() echo.MiddlewareFunc {
	// TODO drop csrf.Secure(false) once the server runs behind TLS
	csrfMiddleware := csrf.Protect(
		r.csrfKey,
		csrf.CookieName(CsrfCookieName),
		csrf.RequestHeader(HeaderCsrfToken),
		csrf.Path("/"),
		csrf.Secure(false),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(handler.HandleCSRFErrorView)),
		csrf.TrustedOrigins(r.trustedOrigins),
	)
	return echo.WrapMiddleware(csrfMiddleware)
}
