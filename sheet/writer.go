package sheet

import (
	"bytes"
	"io"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Write writes the table as a single-sheet workbook: a header row, then the rows.
// Nil cells are left blank.
func Write(w io.Writer, t *model.Table, sheetName string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = defaultSheet
	}
	if sheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(t.Columns))
	for i, column := range t.Columns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for rowIdx, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		copy(values, row)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// Bytes returns the workbook of Write as a byte slice.
func Bytes(t *model.Table, sheetName string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t, sheetName); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
