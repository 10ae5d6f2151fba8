package reconcile

import (
	"errors"
	"testing"

	"github.com/siherrmann/sheetReconciler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableA() *model.Table {
	return model.TableFromRecords("A", []string{"K", "X"},
		map[string]any{"K": int64(1), "X": "a"},
		map[string]any{"K": int64(2), "X": "b"},
	)
}

func tableB() *model.Table {
	return model.TableFromRecords("B", []string{"K", "Y"},
		map[string]any{"K": int64(2), "Y": "c"},
		map[string]any{"K": int64(3), "Y": "d"},
	)
}

func TestValidateKey(t *testing.T) {
	t.Run("ValidateKey with key in both tables", func(t *testing.T) {
		assert.NoError(t, ValidateKey(tableA(), tableB(), "K"))
	})

	t.Run("ValidateKey with key missing in A", func(t *testing.T) {
		err := ValidateKey(tableA(), tableB(), "Y")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingKeyColumn))

		var keyErr *MissingKeyColumnError
		require.True(t, errors.As(err, &keyErr))
		assert.Equal(t, "A", keyErr.Side)
		assert.Equal(t, "A", keyErr.Table)
		assert.Contains(t, err.Error(), "key column 'Y' not found in file A")
	})

	t.Run("ValidateKey with key missing in B", func(t *testing.T) {
		err := ValidateKey(tableA(), tableB(), "X")
		var keyErr *MissingKeyColumnError
		require.True(t, errors.As(err, &keyErr))
		assert.Equal(t, "B", keyErr.Side)
	})

	t.Run("ValidateKey is case sensitive", func(t *testing.T) {
		err := ValidateKey(tableA(), tableB(), "k")
		assert.ErrorIs(t, err, ErrMissingKeyColumn)
	})

	t.Run("ValidateKey with nil table", func(t *testing.T) {
		err := ValidateKey(nil, tableB(), "K")
		assert.ErrorIs(t, err, ErrMissingKeyColumn)
	})
}

func TestDiffCounts(t *testing.T) {
	t.Run("DiffCounts with overlapping keys", func(t *testing.T) {
		counts, err := DiffCounts(tableA(), tableB(), "K")
		require.NoError(t, err)
		assert.Equal(t, model.DiffCounts{NewCount: 1, MissingCount: 1}, counts)
	})

	t.Run("DiffCounts with missing key column returns no counts", func(t *testing.T) {
		counts, err := DiffCounts(tableA(), tableB(), "Z")
		assert.ErrorIs(t, err, ErrMissingKeyColumn)
		assert.Equal(t, model.DiffCounts{}, counts)
	})

	t.Run("DiffCounts does not coerce types", func(t *testing.T) {
		a := model.TableFromRecords("A", []string{"K"}, map[string]any{"K": int64(1)}, map[string]any{"K": "2"})
		b := model.TableFromRecords("B", []string{"K"}, map[string]any{"K": float64(1)}, map[string]any{"K": "2"})

		counts, err := DiffCounts(a, b, "K")
		require.NoError(t, err)
		assert.Equal(t, 1, counts.NewCount)
		assert.Equal(t, 1, counts.MissingCount)
	})

	t.Run("DiffCounts never matches nil keys", func(t *testing.T) {
		a := model.TableFromRecords("A", []string{"K"}, map[string]any{"K": nil}, map[string]any{"K": "x"})
		b := model.TableFromRecords("B", []string{"K"}, map[string]any{"K": nil}, map[string]any{"K": "x"})

		counts, err := DiffCounts(a, b, "K")
		require.NoError(t, err)
		assert.Equal(t, model.DiffCounts{NewCount: 1, MissingCount: 1}, counts)
	})

	t.Run("DiffCounts with empty tables", func(t *testing.T) {
		counts, err := DiffCounts(model.NewTable("A", "K"), model.NewTable("B", "K"), "K")
		require.NoError(t, err)
		assert.Equal(t, model.DiffCounts{}, counts)
	})

	t.Run("DiffCounts with all-nil key column in A", func(t *testing.T) {
		a := model.TableFromRecords("A", []string{"K"}, map[string]any{"K": nil}, map[string]any{"K": nil})
		counts, err := DiffCounts(a, tableB(), "K")
		require.NoError(t, err)
		assert.Equal(t, 2, counts.NewCount)
		assert.Equal(t, 2, counts.MissingCount)
	})
}

func TestExtractRows(t *testing.T) {
	t.Run("ExtractRows NewInB", func(t *testing.T) {
		rows, err := ExtractRows(tableA(), tableB(), "K", NewInB)
		require.NoError(t, err)
		assert.Equal(t, []string{"K", "Y"}, rows.Columns)
		assert.Equal(t, []model.Row{{int64(3), "d"}}, rows.Rows)
		assert.Equal(t, "new_rows", rows.Name)
	})

	t.Run("ExtractRows MissingFromB", func(t *testing.T) {
		rows, err := ExtractRows(tableA(), tableB(), "K", MissingFromB)
		require.NoError(t, err)
		assert.Equal(t, []string{"K", "X"}, rows.Columns)
		assert.Equal(t, []model.Row{{int64(1), "a"}}, rows.Rows)
	})

	t.Run("ExtractRows keeps source order", func(t *testing.T) {
		a := model.TableFromRecords("A", []string{"K"}, map[string]any{"K": "b"})
		b := model.TableFromRecords("B", []string{"K", "N"},
			map[string]any{"K": "z", "N": int64(1)},
			map[string]any{"K": "b", "N": int64(2)},
			map[string]any{"K": "a", "N": int64(3)},
			map[string]any{"K": nil, "N": int64(4)},
		)

		rows, err := ExtractRows(a, b, "K", NewInB)
		require.NoError(t, err)
		assert.Equal(t, []model.Row{{"z", int64(1)}, {"a", int64(3)}, {nil, int64(4)}}, rows.Rows)
	})

	t.Run("ExtractRows does not share rows with the source", func(t *testing.T) {
		b := tableB()
		rows, err := ExtractRows(tableA(), b, "K", NewInB)
		require.NoError(t, err)
		rows.Rows[0][1] = "changed"
		assert.Equal(t, "d", b.Rows[1][1])
	})

	t.Run("ExtractRows with missing key column", func(t *testing.T) {
		rows, err := ExtractRows(tableA(), tableB(), "Y", NewInB)
		assert.ErrorIs(t, err, ErrMissingKeyColumn)
		assert.Nil(t, rows)
	})
}

func TestCountsMatchExtraction(t *testing.T) {
	a := model.TableFromRecords("A", []string{"K", "V"},
		map[string]any{"K": "1", "V": int64(1)},
		map[string]any{"K": "2", "V": int64(2)},
		map[string]any{"K": "2", "V": int64(3)},
		map[string]any{"K": nil, "V": int64(4)},
		map[string]any{"K": "5", "V": int64(5)},
	)
	b := model.TableFromRecords("B", []string{"V", "K"},
		map[string]any{"K": "2", "V": "x"},
		map[string]any{"K": "6", "V": "y"},
		map[string]any{"K": "6", "V": "z"},
		map[string]any{"K": nil, "V": "n"},
	)

	counts, err := DiffCounts(a, b, "K")
	require.NoError(t, err)

	newRows, err := ExtractRows(a, b, "K", NewInB)
	require.NoError(t, err)
	missingRows, err := ExtractRows(a, b, "K", MissingFromB)
	require.NoError(t, err)

	assert.Equal(t, counts.NewCount, newRows.Len())
	assert.Equal(t, counts.MissingCount, missingRows.Len())

	swapped, err := DiffCounts(b, a, "K")
	require.NoError(t, err)
	assert.Equal(t, counts.NewCount, swapped.MissingCount)
	assert.Equal(t, counts.MissingCount, swapped.NewCount)

	// Every extracted new row is still new when compared against A again.
	again, err := DiffCounts(a, newRows, "K")
	require.NoError(t, err)
	assert.Equal(t, newRows.Len(), again.NewCount)
}

func TestParseWhich(t *testing.T) {
	tests := []struct {
		input    string
		expected Which
		wantErr  bool
	}{
		{"new_rows", NewInB, false},
		{"non_existing_rows", MissingFromB, false},
		{"other", 0, true},
	}

	for _, tt := range tests {
		which, err := ParseWhich(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.expected, which)
		assert.Equal(t, tt.input, which.String())
	}
}
