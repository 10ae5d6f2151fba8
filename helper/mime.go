package helper

import (
	"mime"
	"path/filepath"
	"strings"
)

var spreadsheetTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xlsm": "application/vnd.ms-excel.sheet.macroEnabled.12",
	".xls":  "application/vnd.ms-excel",
}

// GetMimeType returns the MIME type for a file based on its extension
func GetMimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mimeType, ok := spreadsheetTypes[ext]; ok {
		return mimeType
	}
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream" // Default for unknown file types
	}
	return mimeType
}

// IsWorkbook reports whether the file name has a workbook extension excelize can open.
func IsWorkbook(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}
