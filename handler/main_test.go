package handler

import (
	"bytes"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/siherrmann/sheetReconciler/database"
	"github.com/siherrmann/sheetReconciler/helper"
	"github.com/siherrmann/sheetReconciler/upload"

	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testSheet struct {
	name string
	rows [][]interface{}
}

func newTestHandler(t *testing.T) (*ReconcilerHandler, upload.Filesystem, *database.ResultDBHandler) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	rdb, err := database.NewResultDBHandler(logger, 0)
	require.NoError(t, err)

	fs := upload.NewFilesystemMemory()
	return NewReconcilerHandler(fs, rdb, helper.NewLogBuffer(100), logger), fs, rdb
}

func workbookBytes(t *testing.T, sheets ...testSheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for rowIdx, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(s.name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func workbookA(t *testing.T) []byte {
	return workbookBytes(t, testSheet{name: "Sheet1", rows: [][]interface{}{
		{"K", "NAME"},
		{1, "one"},
		{2, "two"},
		{3, "three"},
	}})
}

func workbookB(t *testing.T) []byte {
	return workbookBytes(t, testSheet{name: "Sheet1", rows: [][]interface{}{
		{"K", "NAME"},
		{2, "two"},
		{3, "three"},
		{4, "four"},
		{5, "five"},
	}})
}

func copierWorkbook(t *testing.T) []byte {
	return workbookBytes(t,
		testSheet{name: "existing-mappings", rows: [][]interface{}{
			{"MAPPING_KEY", "MAP_PBS_DRUG_ID_1", "PBS_CODE"},
			{"k1", "D1", "P1"},
			{"k2", "D2", "P2"},
		}},
		testSheet{name: "need-mapping", rows: [][]interface{}{
			{"MAPPING_KEY", "MAPPED_SYNONYM_ID"},
			{"k1", 100},
			{"k2", 200},
			{"k9", 900},
		}},
	)
}

func multipartRequest(t *testing.T, target string, files map[string][]byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, data := range files {
		part, err := writer.CreateFormFile(field, field+".xlsx")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}
