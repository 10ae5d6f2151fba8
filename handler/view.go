package handler

import (
	"fmt"
	"net/http"

	"github.com/siherrmann/sheetReconciler/view/screens"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v5"
)

// =======View Handlers=======

// IndexView renders the form page
func (m *ReconcilerHandler) IndexView(c *echo.Context) error {
	files, err := m.filesystem.ListFiles()
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list files: %v", err))
	}

	summaries, err := m.resultSummaries()
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list results: %v", err))
	}

	lines := []string{}
	if m.logs != nil {
		lines = m.logs.Lines()
	}

	return render(c, screens.Index(csrf.Token(c.Request()), files, summaries, lines))
}

// LogsView renders the log pane
func (m *ReconcilerHandler) LogsView(c *echo.Context) error {
	lines := []string{}
	if m.logs != nil {
		lines = m.logs.Lines()
	}
	return render(c, screens.Logs(lines))
}
