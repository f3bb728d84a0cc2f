package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// CBPRow is one row of a County Business Patterns extract
type CBPRow struct {
	County string
	NAICS  string
	EMP    float64
	ESTAB  float64
}

// CountyRows returns two counties of a small state at the sector level,
// plus a subsector row per county. Totals are consistent per county.
func CountyRows() []CBPRow {
	return []CBPRow{
		{"001", "00", 100, 10},
		{"001", "11", 40, 4},
		{"001", "22", 60, 6},
		{"001", "111", 30, 3},
		{"003", "00", 50, 5},
		{"003", "11", 10, 1},
		{"003", "22", 40, 4},
		{"003", "111", 5, 1},
	}
}

// WriteCBPCSV writes rows as a CBP CSV extract in a temporary directory and
// returns its path. Columns are county, NAICS2012, EMP, ESTAB.
func WriteCBPCSV(t *testing.T, rows []CBPRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cbp.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := [][]string{{"county", "NAICS2012", "EMP", "ESTAB"}}
	for _, r := range rows {
		records = append(records, []string{
			r.County,
			r.NAICS,
			strconv.FormatFloat(r.EMP, 'f', -1, 64),
			strconv.FormatFloat(r.ESTAB, 'f', -1, 64),
		})
	}
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
