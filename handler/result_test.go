package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/siherrmann/sheetReconciler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResultsHandler(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	e := echo.New()

	t.Run("GetResults without results", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/result/getResults", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.GetResults(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("GetResults with mapping result", func(t *testing.T) {
		response := processMapping(t, handler, e)

		req := httptest.NewRequest(http.MethodGet, "/api/result/getResults", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.GetResults(c)
		require.NoError(t, err)

		var summaries []model.ResultSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		require.Len(t, summaries, 1)
		assert.Equal(t, response.RID, summaries[0].RID)
		assert.Equal(t, 2, summaries[0].Rows)
	})
}

func TestDeleteResultHandler(t *testing.T) {
	handler, _, rdb := newTestHandler(t)
	e := echo.New()
	response := processMapping(t, handler, e)

	t.Run("DeleteResult with existing result", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/result/deleteResult/"+response.RID.String(), nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPathValues([]echo.PathValue{{Name: "rid", Value: response.RID.String()}})

		err := handler.DeleteResult(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "deleted successfully")

		_, err = rdb.SelectResult(response.RID)
		assert.Error(t, err)
	})

	t.Run("DeleteResult with unknown result", func(t *testing.T) {
		rid := uuid.New().String()
		req := httptest.NewRequest(http.MethodPost, "/api/result/deleteResult/"+rid, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPathValues([]echo.PathValue{{Name: "rid", Value: rid}})

		err := handler.DeleteResult(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "result not found")
	})

	t.Run("DeleteResult with HTMX request renders popup", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/result/deleteResult/abc", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPathValues([]echo.PathValue{{Name: "rid", Value: "abc"}})

		err := handler.DeleteResult(c)
		require.NoError(t, err)

		assert.Equal(t, "#body", rec.Header().Get("HX-Retarget"))
		assert.Contains(t, rec.Body.String(), "popup-error")
	})
}

func TestResultsViewHandler(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	e := echo.New()
	processMapping(t, handler, e)

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ResultsView(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "final_table")
}
