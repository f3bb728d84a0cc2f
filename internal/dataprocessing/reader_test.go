package dataprocessing

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cbpmetrics/internal/config"
	apperrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/regional"
	"cbpmetrics/internal/shared/testutil"
)

func defaultReader(t *testing.T) *Reader {
	logger, _ := testutil.NewTestLogger(t)
	return NewReader(ColumnsFrom(config.Default().Analysis), logger)
}

func TestReader_ReadFileCSV(t *testing.T) {
	path := testutil.WriteCBPCSV(t, testutil.CountyRows())

	table, err := defaultReader(t).ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8, table.Len())
	assert.Equal(t, []string{"001", "003"}, table.Geographies())

	s, err := table.Series("001", regional.DefaultTotalCode)
	require.NoError(t, err)
	v, ok := s.Value("111")
	require.True(t, ok)
	assert.Equal(t, 30.0, v)
}

func TestReader_ValueColumn(t *testing.T) {
	path := testutil.WriteCBPCSV(t, testutil.CountyRows())

	cols := ColumnsFrom(config.Default().Analysis)
	cols.Value = "estab"
	table, err := NewReader(cols, nil).ReadFile(path)
	require.NoError(t, err)

	rows := table.Rows()
	assert.Equal(t, 10.0, rows[0].Value)
}

func TestReader_ReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr string
	}{
		{
			name:    "bom, spacing and thousands separators",
			input:   "\ufeffCounty, NAICS2012 ,EMP\n001,00,\"1,200\"\n\n001,31-33,200\n",
			wantLen: 2,
		},
		{
			name:    "missing column",
			input:   "county,EMP\n001,5\n",
			wantErr: "missing columns: NAICS2012",
		},
		{
			name:    "empty value",
			input:   "county,NAICS2012,EMP\n001,00,\n",
			wantErr: "row 2",
		},
		{
			name:    "non-numeric value",
			input:   "county,NAICS2012,EMP\n001,00,10\n001,11,D\n",
			wantErr: "row 3",
		},
		{
			name:    "nan value",
			input:   "county,NAICS2012,EMP\n001,00,NaN\n001,11,5\n",
			wantErr: "row 2",
		},
		{
			name:    "infinite value",
			input:   "county,NAICS2012,EMP\n001,00,10\n001,11,+Inf\n",
			wantErr: "row 3",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: "no header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := defaultReader(t).ReadCSV(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, table.Len())
		})
	}
}

func TestReader_ReadCSVKeepsCodesAsText(t *testing.T) {
	table, err := defaultReader(t).ReadCSV(strings.NewReader("county,NAICS2012,EMP\n001,00,10\n001,11----,4\n"))
	require.NoError(t, err)

	rows := table.Rows()
	assert.Equal(t, "00", rows[0].Industry)
	assert.Equal(t, "11----", rows[1].Industry)
}

func writeWorkbook(t *testing.T, rows []testutil.CBPRow) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "CBP"
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"county", "NAICS2012", "EMP", "ESTAB"}))
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &[]interface{}{r.County, r.NAICS, r.EMP, r.ESTAB}))
	}

	path := filepath.Join(t.TempDir(), "cbp.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReader_ReadFileXLSX(t *testing.T) {
	path := writeWorkbook(t, testutil.CountyRows())

	table, err := defaultReader(t).ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8, table.Len())
	totals, err := table.Totals(regional.DefaultTotalCode)
	require.NoError(t, err)
	assert.Equal(t, 150.0, totals.Total())
}

func TestReader_ReadXLSXUnknownSheet(t *testing.T) {
	path := writeWorkbook(t, testutil.CountyRows())

	_, err := defaultReader(t).ReadXLSX(path, "Missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
}

func TestReader_ReadFileErrors(t *testing.T) {
	r := defaultReader(t)

	_, err := r.ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))

	_, err = r.ReadFile("extract.json")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeParsing, apperrors.TypeOf(err))
}
