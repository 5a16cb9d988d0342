package ctank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}
	return f
}

func TestParseReadingsXLSX(t *testing.T) {

	f := buildWorkbook(t, [][]interface{}{
		{"tank_id", "timestamp", "level", "sg"},
		{"7", "2025-03-01", "120.5"},
		{"7", "1740873600000", "118", "1.25"},
		{"8", "2025-03-01 08:30", "42.0"},
	})
	defer f.Close()

	readings, err := ParseReadingsXLSX(f)
	require.NoError(t, err)
	require.Len(t, readings, 3)

	assert.Equal(t, int64(7), readings[0].TankID)
	assert.InDelta(t, 120.5, readings[0].LevelCm, 1e-9)
	assert.Zero(t, readings[0].SGOverride)

	/* INTEGER CELLS ARE UNIX MILLI */
	assert.Equal(t, int64(1740873600000), readings[1].Timestamp)
	assert.InDelta(t, 1.25, readings[1].SGOverride, 1e-9)

	assert.Equal(t, int64(8), readings[2].TankID)

	/* DATE-ONLY AND DATE-TIME CELLS PARSE TO THE SAME DAY */
	assert.Equal(t, readings[0].Timestamp+int64(8.5*3600000), readings[2].Timestamp)
}

func TestParseReadingsXLSX_HeaderOnly(t *testing.T) {

	f := buildWorkbook(t, [][]interface{}{
		{"tank_id", "timestamp", "level"},
	})
	defer f.Close()

	readings, err := ParseReadingsXLSX(f)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestParseReadingsXLSX_BadRows(t *testing.T) {

	cases := []struct {
		name string
		row  []interface{}
	}{
		{"bad tank id", []interface{}{"seven", "2025-03-01", "120"}},
		{"bad timestamp", []interface{}{"7", "yesterday", "120"}},
		{"bad level", []interface{}{"7", "2025-03-01", "tall"}},
		{"bad sg", []interface{}{"7", "2025-03-01", "120", "heavy"}},
		{"short row", []interface{}{"7", "2025-03-01"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := buildWorkbook(t, [][]interface{}{
				{"tank_id", "timestamp", "level"},
				tc.row,
			})
			defer f.Close()

			_, err := ParseReadingsXLSX(f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Row 2")
		})
	}
}
