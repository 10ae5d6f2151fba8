package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/reconcile"
	"github.com/siherrmann/sheetReconciler/sheet"
	"github.com/siherrmann/sheetReconciler/view/screens"

	"github.com/labstack/echo/v5"
)

// =======API Handlers=======

func (m *ReconcilerHandler) loadReconciler(c *echo.Context) (*reconcile.Reconciler, error) {
	if err := m.parseForm(c); err != nil {
		return nil, err
	}

	keyColumn := strings.TrimSpace(c.Request().FormValue("key_column"))
	if keyColumn == "" {
		return nil, newInputError("Key column is required")
	}
	m.requestLogger(c).Info("Processing files", slog.String("key_column", keyColumn))

	a, err := m.readTable(c, "file_a", "sheet_a")
	if err != nil {
		return nil, err
	}
	b, err := m.readTable(c, "file_b", "sheet_b")
	if err != nil {
		return nil, err
	}

	return reconcile.New(a, b, keyColumn)
}

// ProcessReconcile counts the rows of B missing in A and the rows of A missing in B
func (m *ReconcilerHandler) ProcessReconcile(c *echo.Context) error {
	defer cleanupForm(c)

	r, err := m.loadReconciler(c)
	if err != nil {
		m.requestLogger(c).Error("An error occurred", slog.String("error", err.Error()))
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}

	counts := r.DiffCounts()
	m.requestLogger(c).Info("New rows count", slog.Int("count", counts.NewCount))
	m.requestLogger(c).Info("Non-existing rows count", slog.Int("count", counts.MissingCount))

	if isHxRequest(c) {
		return render(c, screens.Counts(counts))
	}
	return c.JSON(http.StatusOK, counts)
}

// DownloadReconcile returns the rows selected by download_type as a workbook.
// The extracted table is also stored as a result.
func (m *ReconcilerHandler) DownloadReconcile(c *echo.Context) error {
	defer cleanupForm(c)

	r, err := m.loadReconciler(c)
	if err != nil {
		m.requestLogger(c).Error("An error occurred", slog.String("error", err.Error()))
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}

	which, err := reconcile.ParseWhich(c.Request().FormValue("download_type"))
	if err != nil {
		return renderErrorOrJson(c, http.StatusBadRequest, err.Error())
	}
	m.requestLogger(c).Info("Downloading rows", slog.String("download_type", which.String()))

	table, err := r.ExtractRows(which)
	if err != nil {
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}

	data, err := sheet.Bytes(table, "")
	if err != nil {
		m.requestLogger(c).Error("An error occurred", slog.String("error", err.Error()))
		return renderErrorOrJson(c, http.StatusInternalServerError, err.Error())
	}

	stored, err := m.resultDB.InsertResult(&model.Result{
		Kind:  model.ResultKind(which.String()),
		Name:  which.String(),
		Table: table,
	})
	if err != nil {
		return renderErrorOrJson(c, http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set("X-Result-Id", stored.RID.String())

	filename := which.String() + ".xlsx"
	m.requestLogger(c).Info("Download complete", slog.String("file", filename), slog.Int("rows", table.Len()))

	return attachment(c, filename, sheet.ContentType, data)
}
