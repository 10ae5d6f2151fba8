package sheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for rowIdx, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return buf
}

func TestRead(t *testing.T) {
	t.Run("Read with typed cells", func(t *testing.T) {
		buf := workbook(t, map[string][][]interface{}{
			"Data": {
				{"K", "Name", "Price", "Active"},
				{1, "aspirin", 2.5, true},
				{2, "00123", nil, false},
			},
		})

		table, err := Read(buf, ReadOptions{File: "a.xlsx"})
		require.NoError(t, err)

		assert.Equal(t, "a.xlsx", table.Name)
		assert.Equal(t, []string{"K", "Name", "Price", "Active"}, table.Columns)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, model.Row{int64(1), "aspirin", 2.5, true}, table.Rows[0])
		assert.Equal(t, model.Row{int64(2), "00123", nil, false}, table.Rows[1])
	})

	t.Run("Read with unnamed and duplicate headers", func(t *testing.T) {
		buf := workbook(t, map[string][][]interface{}{
			"Sheet1": {
				{"A", nil, "A", "A"},
				{"x", "y", "z", "w", "extra"},
			},
		})

		table, err := Read(buf, ReadOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "Unnamed: 1", "A.1", "A.2", "Unnamed: 4"}, table.Columns)
		assert.Equal(t, model.Row{"x", "y", "z", "w", "extra"}, table.Rows[0])
	})

	t.Run("Read pads short rows and skips empty rows", func(t *testing.T) {
		buf := workbook(t, map[string][][]interface{}{
			"Sheet1": {
				{nil},
				{"K", "V"},
				{"1"},
				{nil, nil},
				{"2", "b"},
			},
		})

		table, err := Read(buf, ReadOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"K", "V"}, table.Columns)
		assert.Equal(t, []model.Row{{"1", nil}, {"2", "b"}}, table.Rows)
	})

	t.Run("Read with named sheet", func(t *testing.T) {
		buf := workbook(t, map[string][][]interface{}{
			"first":  {{"A"}, {"a"}},
			"second": {{"B"}, {"b"}},
		})

		table, err := Read(buf, ReadOptions{File: "book.xlsx", Sheet: "second"})
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, table.Columns)
	})

	t.Run("Read with missing sheet", func(t *testing.T) {
		buf := workbook(t, map[string][][]interface{}{"Sheet1": {{"A"}}})

		_, err := Read(buf, ReadOptions{File: "book.xlsx", Sheet: "nope"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrParseFailure))
		assert.True(t, errors.Is(err, ErrSheetNotFound))
		assert.Contains(t, err.Error(), "book.xlsx")
	})

	t.Run("Read with invalid workbook", func(t *testing.T) {
		_, err := Read(strings.NewReader("not a workbook"), ReadOptions{File: "broken.xlsx"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParseFailure)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "broken.xlsx", parseErr.File)
	})

	t.Run("Read with empty sheet", func(t *testing.T) {
		buf := workbook(t, map[string][][]interface{}{"Sheet1": {}})

		table, err := Read(buf, ReadOptions{})
		require.NoError(t, err)
		assert.Empty(t, table.Columns)
		assert.Empty(t, table.Rows)
	})
}

func TestHeaderNames(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		width    int
		expected []string
	}{
		{"Unique names", []string{"A", "B"}, 2, []string{"A", "B"}},
		{"Repeated names", []string{"A", "A", "A"}, 3, []string{"A", "A.1", "A.2"}},
		{"Suffix already in header", []string{"A.1", "A", "A"}, 3, []string{"A.1", "A", "A.2"}},
		{"Suffix of a suffix", []string{"A", "A", "A.1"}, 3, []string{"A", "A.1", "A.1.1"}},
		{"Empty and missing names", []string{"", "Unnamed: 0"}, 3, []string{"Unnamed: 0", "Unnamed: 0.1", "Unnamed: 2"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			names := headerNames(test.header, test.width)
			assert.Equal(t, test.expected, names)

			seen := map[string]bool{}
			for _, name := range names {
				assert.False(t, seen[name], "duplicate column %q", name)
				seen[name] = true
			}
		})
	}
}

func TestReadSheets(t *testing.T) {
	buf := workbook(t, map[string][][]interface{}{
		"existing-mappings": {{"MAPPING_KEY", "PBS_CODE"}, {"k1", "P1"}},
		"need-mapping":      {{"MAPPING_KEY"}, {"k1"}},
	})

	data := buf.Bytes()

	tables, err := ReadSheets(bytes.NewReader(data), "copier.xlsx", "existing-mappings", "need-mapping")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "existing-mappings", tables["existing-mappings"].Name)
	assert.Equal(t, []model.Row{{"k1"}}, tables["need-mapping"].Rows)

	_, err = ReadSheets(bytes.NewReader(data), "copier.xlsx", "missing")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestWrite(t *testing.T) {
	t.Run("Write and read back", func(t *testing.T) {
		table := model.TableFromRecords("result", []string{"MAP_PBS_DRUG_ID_1", "PBS_CODE", "COUNT"},
			map[string]any{"MAP_PBS_DRUG_ID_1": "D1", "PBS_CODE": "00123", "COUNT": int64(3)},
			map[string]any{"MAP_PBS_DRUG_ID_1": nil, "PBS_CODE": "P2", "COUNT": 1.5},
		)

		data, err := Bytes(table, "final_table")
		require.NoError(t, err)

		back, err := Read(bytes.NewReader(data), ReadOptions{File: "final_table.xlsx", Sheet: "final_table"})
		require.NoError(t, err)
		assert.Equal(t, table.Columns, back.Columns)
		assert.Equal(t, table.Rows, back.Rows)
	})

	t.Run("Write header only for empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, model.NewTable("empty", "K", "V"), ""))

		back, err := Read(&buf, ReadOptions{Sheet: "Sheet1"})
		require.NoError(t, err)
		assert.Equal(t, []string{"K", "V"}, back.Columns)
		assert.Empty(t, back.Rows)
	})
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
