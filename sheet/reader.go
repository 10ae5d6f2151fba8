// Package sheet loads worksheets into tables and writes tables back as xlsx workbooks.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of xlsx workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReadOptions selects what to load from a workbook.
type ReadOptions struct {
	// File names the workbook in errors and becomes the table name.
	File string
	// Sheet is the worksheet to load. The first worksheet is used if empty.
	Sheet string
}

// Read loads one worksheet as a table.
//
// The first non-empty row is the header. Empty header cells are named
// "Unnamed: N" (0-based column), repeated names get ".1", ".2" suffixes.
// Empty cells become nil, empty rows are skipped, number cells become int64
// or float64 and text cells stay strings.
func Read(r io.Reader, opts ReadOptions) (*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewParseError(opts.File, opts.Sheet, err)
	}
	defer f.Close()

	sheetName := opts.Sheet
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, NewParseError(opts.File, "", fmt.Errorf("workbook has no sheets"))
		}
		sheetName = sheets[0]
	}

	table, err := readSheet(f, sheetName, opts.File)
	if err != nil {
		return nil, NewParseError(opts.File, sheetName, err)
	}
	return table, nil
}

// ReadSheets loads several named worksheets of the same workbook.
func ReadSheets(r io.Reader, file string, sheetNames ...string) (map[string]*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, NewParseError(file, "", err)
	}
	defer f.Close()

	tables := make(map[string]*model.Table, len(sheetNames))
	for _, sheetName := range sheetNames {
		table, err := readSheet(f, sheetName, sheetName)
		if err != nil {
			return nil, NewParseError(file, sheetName, err)
		}
		tables[sheetName] = table
	}
	return tables, nil
}

func readSheet(f *excelize.File, sheetName string, tableName string) (*model.Table, error) {
	if !hasSheet(f, sheetName) {
		return nil, ErrSheetNotFound
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	headerIdx := -1
	width := 0
	for rowIdx, row := range rows {
		if headerIdx < 0 && !isEmptyRow(row) {
			headerIdx = rowIdx
		}
		if headerIdx >= 0 && len(row) > width {
			width = len(row)
		}
	}
	if headerIdx < 0 {
		return model.NewTable(tableName), nil
	}

	table := model.NewTable(tableName, headerNames(rows[headerIdx], width)...)
	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isEmptyRow(row) {
			continue
		}

		values := make(model.Row, width)
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			values[colIdx] = cellValue(cellType, raw)
		}
		table.Rows = append(table.Rows, values)
	}

	return table, nil
}

func hasSheet(f *excelize.File, sheetName string) bool {
	for _, name := range f.GetSheetList() {
		if name == sheetName {
			return true
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// headerNames names every column up to width, following the pandas conventions.
// A suffixed name skips names already given to an earlier column.
func headerNames(header []string, width int) []string {
	names := make([]string, width)
	used := map[string]bool{}
	counts := map[string]int{}
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if used[name] {
			base := name
			for {
				counts[base]++
				name = fmt.Sprintf("%s.%d", base, counts[base])
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func cellValue(cellType excelize.CellType, raw string) any {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return raw
	case excelize.CellTypeBool:
		switch strings.ToUpper(raw) {
		case "1", "TRUE":
			return true
		case "0", "FALSE":
			return false
		}
		return raw
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
