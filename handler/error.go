package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/view/components"

	"github.com/gorilla/csrf"
)

const csrfErrorMessage = "Invalid CSRF token, please reload the page."

// HandleCSRFErrorView answers a request rejected by the csrf middleware. HTMX
// requests from the web shell get an error popup, API clients get a 403 with
// {"error": message}.
func HandleCSRFErrorView(w http.ResponseWriter, r *http.Request) {
	slog.Warn("CSRF error",
		slog.Any("error", csrf.FailureReason(r)),
		slog.String("path", r.URL.Path),
		slog.String("request_id", model.RequestIDFromContext(r.Context())),
	)

	if r.Header.Get("HX-Request") != "" {
		renderPopupHTTP(w, components.PopupError("Error", csrfErrorMessage))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(map[string]string{"error": csrfErrorMessage})
}
