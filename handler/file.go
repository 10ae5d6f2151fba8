package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/siherrmann/sheetReconciler/helper"
	"github.com/siherrmann/sheetReconciler/upload"
	"github.com/siherrmann/sheetReconciler/view/screens"

	"github.com/labstack/echo/v5"
)

// =======API Handlers=======

func (m *ReconcilerHandler) UploadFiles(c *echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, m.maxUploadBytes)
	err := req.ParseMultipartForm(m.maxUploadBytes)
	if err != nil {
		return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("Failed to parse multipart form: %v", err))
	}

	form := req.MultipartForm
	defer form.RemoveAll() // Clean up temporary files

	files := form.File["files"]
	if len(files) == 0 {
		return renderPopupOrJson(c, http.StatusBadRequest, "No files found in the request")
	}

	var uploadedFiles []string
	for _, fileHeader := range files {
		filename := filepath.Base(fileHeader.Filename)
		if !helper.IsWorkbook(filename) {
			return renderPopupOrJson(c, http.StatusBadRequest, fmt.Sprintf("File %s is not an xlsx workbook", filename))
		}

		file, err := fileHeader.Open()
		if err != nil {
			return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to open file %s: %v", fileHeader.Filename, err))
		}

		err = m.filesystem.Write(filename, file, fileHeader.Size)
		file.Close()
		if err != nil {
			return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to save file %s: %v", filename, err))
		}

		uploadedFiles = append(uploadedFiles, filename)
	}
	m.requestLogger(c).Info("Uploaded files", slog.Any("files", uploadedFiles))

	c.Response().Header().Add("HX-Trigger-After-Settle", "reloadFiles")

	return renderPopupOrJson(c, http.StatusOK, fmt.Sprintf("%v file(s) uploaded successfully", len(uploadedFiles)))
}

func (m *ReconcilerHandler) DeleteFile(c *echo.Context) error {
	filename := c.Param("filename")
	if unescaped, err := url.PathUnescape(filename); err == nil {
		filename = unescaped
	}

	err := m.filesystem.Delete(filename)
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to delete file %s: %v", filename, err))
	}
	m.requestLogger(c).Info("Deleted file", slog.String("file", filename))

	c.Response().Header().Add("HX-Trigger-After-Settle", "reloadFiles")

	return renderPopupOrJson(c, http.StatusOK, fmt.Sprintf("File %s deleted successfully", filename))
}

// GetFiles lists the workspace files, optionally filtered by search
func (m *ReconcilerHandler) GetFiles(c *echo.Context) error {
	files, err := m.searchFiles(c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": fmt.Sprintf("Failed to list files: %v", err),
		})
	}
	return c.JSON(http.StatusOK, files)
}

func (m *ReconcilerHandler) searchFiles(search string) ([]upload.File, error) {
	files, err := m.filesystem.ListFiles()
	if err != nil {
		return nil, err
	}

	if search != "" {
		filteredFiles := []upload.File{}
		for _, file := range files {
			if strings.Contains(file.Name, search) {
				filteredFiles = append(filteredFiles, file)
			}
		}
		files = filteredFiles
	}
	return files, nil
}

// =======View Handlers=======

// FilesView renders the files list
func (m *ReconcilerHandler) FilesView(c *echo.Context) error {
	files, err := m.searchFiles(c.QueryParam("search"))
	if err != nil {
		return renderPopupOrJson(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list files: %v", err))
	}
	return render(c, screens.Files(files))
}
