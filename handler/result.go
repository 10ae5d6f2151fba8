package handler

import (
	"fmt"
	"net/http"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/view/screens"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

func (m *ReconcilerHandler) resultSummaries() ([]model.ResultSummary, error) {
	results, err := m.resultDB.SelectAllResults()
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ResultSummary, 0, len(results))
	for _, result := range results {
		summaries = append(summaries, result.Summary())
	}
	return summaries, nil
}

// =======API Handlers=======

// GetResults lists the stored results, newest first
func (m *ReconcilerHandler) GetResults(c *echo.Context) error {
	summaries, err := m.resultSummaries()
	if err != nil {
		return renderErrorOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list results: %v", err))
	}
	return c.JSON(http.StatusOK, summaries)
}

// DeleteResult removes a stored result
func (m *ReconcilerHandler) DeleteResult(c *echo.Context) error {
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid result RID: %v", err))
	}

	err = m.resultDB.DeleteResult(rid)
	if err != nil {
		return renderPopupOrJson(c, http.StatusNotFound, fmt.Sprintf("Failed to delete result %s: %v", rid, err))
	}

	c.Response().Header().Add("HX-Trigger-After-Settle", "reloadResults")

	return renderPopupOrJson(c, http.StatusOK, fmt.Sprintf("Result %s deleted successfully", rid))
}

// =======View Handlers=======

// ResultsView renders the stored results list
func (m *ReconcilerHandler) ResultsView(c *echo.Context) error {
	summaries, err := m.resultSummaries()
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list results: %v", err))
	}
	return render(c, screens.Results(summaries))
}
