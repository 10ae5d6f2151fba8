package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/reconcile"
	"github.com/siherrmann/sheetReconciler/script"
	"github.com/siherrmann/sheetReconciler/sheet"
	"github.com/siherrmann/sheetReconciler/view/screens"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	vm "github.com/siherrmann/validator/model"
)

// =======API Handlers=======

// ProcessMapping joins the need-mapping sheet of the copier workbook with its
// existing-mappings sheet and stores the projected table as a result
func (m *ReconcilerHandler) ProcessMapping(c *echo.Context) error {
	defer cleanupForm(c)

	if err := m.parseForm(c); err != nil {
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}

	reader, name, err := m.openWorkbook(c, "file")
	if err != nil {
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}
	defer reader.Close()

	tables, err := sheet.ReadSheets(reader, name, m.mapping.Sheets()...)
	if err != nil {
		m.requestLogger(c).Error("An error occurred", slog.String("error", err.Error()))
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}

	table, err := reconcile.CopyMappings(tables, m.mapping)
	if err != nil {
		m.requestLogger(c).Error("An error occurred", slog.String("error", err.Error()))
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}

	stored, err := m.resultDB.InsertResult(&model.Result{
		Kind:  model.ResultKindMapping,
		Name:  table.Name,
		Table: table,
	})
	if err != nil {
		return renderErrorOrJson(c, http.StatusInternalServerError, err.Error())
	}
	m.requestLogger(c).Info(fmt.Sprintf("Processed %d rows and %d columns.", table.Len(), len(table.Columns)), slog.String("rid", stored.RID.String()))

	if isHxRequest(c) {
		c.Response().Header().Add("HX-Trigger-After-Settle", "reloadResults")
		return render(c, screens.MappingResult(stored))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"rid":     stored.RID,
		"rows":    table.Len(),
		"columns": table.Columns,
	})
}

// DownloadResult returns a stored result as a workbook named after the result
func (m *ReconcilerHandler) DownloadResult(c *echo.Context) error {
	result, status, err := m.selectResult(c)
	if err != nil {
		return renderErrorOrJson(c, status, err.Error())
	}

	data, err := sheet.Bytes(result.Table, "")
	if err != nil {
		return renderErrorOrJson(c, http.StatusInternalServerError, err.Error())
	}

	return attachment(c, result.Name+".xlsx", sheet.ContentType, data)
}

// GenerateScript expands the template once per row of a stored result.
// Without field_map every placeholder names a result column.
func (m *ReconcilerHandler) GenerateScript(c *echo.Context) error {
	result, status, err := m.selectResult(c)
	if err != nil {
		return renderErrorOrJson(c, status, err.Error())
	}

	parameters := map[string]any{}
	err = m.validator.UnmapOrUnmarshalValidateAndUpdateWithValidation(c.Request(), &parameters, []vm.Validation{
		{Key: "template", Type: "string", Requirement: "min1"},
	})
	if err != nil {
		return renderErrorOrJson(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
	}

	template, _ := parameters["template"].(string)
	if template == "" {
		template = c.Request().FormValue("template")
	}
	if template == "" {
		return renderErrorOrJson(c, http.StatusBadRequest, "Template is required")
	}

	fieldMap := model.IdentityFieldMap(result.Table.Columns)
	if raw := c.Request().FormValue("field_map"); strings.TrimSpace(raw) != "" {
		fieldMap = model.FieldMap{}
		if err := fieldMap.Unmarshal(raw); err != nil {
			return renderErrorOrJson(c, http.StatusBadRequest, fmt.Sprintf("Invalid field_map JSON: %v", err))
		}
	}

	out, err := script.Expand(result.Table, template, fieldMap)
	if err != nil {
		return renderErrorOrJson(c, errorStatus(err), err.Error())
	}
	m.requestLogger(c).Info("Generated script", slog.String("rid", result.RID.String()), slog.Int("rows", result.Table.Len()))

	switch strings.ToLower(c.Request().FormValue("as_file")) {
	case "1", "true", "on":
		return attachment(c, result.Name+".sql", "text/plain; charset=utf-8", []byte(out))
	}
	if isHxRequest(c) {
		return render(c, screens.Script(out))
	}
	return c.String(http.StatusOK, out)
}

func (m *ReconcilerHandler) selectResult(c *echo.Context) (*model.Result, int, error) {
	rid, err := uuid.Parse(c.Param("rid"))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("Invalid result RID: %v", err)
	}

	result, err := m.resultDB.SelectResult(rid)
	if err != nil {
		return nil, http.StatusNotFound, err
	}
	return result, http.StatusOK, nil
}
