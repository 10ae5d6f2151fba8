package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/sheet"

	"github.com/labstack/echo/v5"
)

// parseForm parses a multipart request within the upload limit. Requests that are
// not multipart keep their url encoded form, used to reference stored files.
func (m *ReconcilerHandler) parseForm(c *echo.Context) error {
	req := c.Request()
	if req.MultipartForm != nil {
		return nil
	}

	req.Body = http.MaxBytesReader(c.Response(), req.Body, m.maxUploadBytes)
	err := req.ParseMultipartForm(m.maxUploadBytes)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return newInputError("Failed to parse multipart form: %v", err)
	}
	return nil
}

// cleanupForm removes the temporary files of a parsed multipart form.
func cleanupForm(c *echo.Context) {
	if form := c.Request().MultipartForm; form != nil {
		form.RemoveAll()
	}
}

// openWorkbook opens the workbook uploaded as field, or the stored workspace file
// named by field + "_name".
func (m *ReconcilerHandler) openWorkbook(c *echo.Context, field string) (io.ReadCloser, string, error) {
	file, header, err := c.Request().FormFile(field)
	if err == nil {
		return file, header.Filename, nil
	}
	if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return nil, "", newInputError("Failed to read uploaded file %s: %v", field, err)
	}

	name := c.Request().FormValue(field + "_name")
	if name == "" {
		return nil, "", newInputError("No file provided for %s", field)
	}
	reader, err := m.filesystem.Open(name)
	if err != nil {
		return nil, "", newInputError("Failed to open stored file %s: %v", name, err)
	}
	return reader, name, nil
}

// readTable loads the workbook of field, on the sheet named in sheetField or the first sheet.
func (m *ReconcilerHandler) readTable(c *echo.Context, field, sheetField string) (*model.Table, error) {
	reader, name, err := m.openWorkbook(c, field)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return sheet.Read(reader, sheet.ReadOptions{
		File:  name,
		Sheet: c.Request().FormValue(sheetField),
	})
}

func attachment(c *echo.Context, filename, contentType string, data []byte) error {
	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, data)
}
