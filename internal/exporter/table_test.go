package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cbpmetrics/internal/regional"
)

func series(t *testing.T, values map[string]float64) regional.Series {
	t.Helper()
	s, err := regional.SeriesFromMap(values, regional.DefaultTotalCode)
	require.NoError(t, err)
	return s
}

func lqResult(t *testing.T) regional.LocationQuotientResult {
	t.Helper()
	res, err := regional.LocationQuotient(
		series(t, map[string]float64{"00": 100, "11": 40, "22": 60}),
		series(t, map[string]float64{"00": 1000, "11": 0, "22": 700}),
	)
	require.NoError(t, err)
	return res
}

func TestLocationQuotientTable(t *testing.T) {
	tbl := LocationQuotientTable(lqResult(t))

	assert.Equal(t, "location_quotient", tbl.Name)
	require.Len(t, tbl.Rows, 3)
	for _, row := range tbl.Rows {
		assert.Len(t, row, len(tbl.Headers))
	}

	row := tbl.Rows[1]
	assert.Equal(t, "11", row[0])
	assert.NotEmpty(t, row[1])
	assert.Equal(t, 40.0, row[2])
	assert.True(t, math.IsNaN(row[6].(float64)))
}

func TestShiftShareTables(t *testing.T) {
	res, err := regional.ShiftShare(
		series(t, map[string]float64{"00": 100, "11": 40, "22": 60}),
		series(t, map[string]float64{"00": 120, "11": 50, "22": 70}),
		series(t, map[string]float64{"00": 1000, "11": 300, "22": 700}),
		series(t, map[string]float64{"00": 1100, "11": 360, "22": 740}),
	)
	require.NoError(t, err)

	detail, summary := ShiftShareTables(res)

	assert.Equal(t, "shift_share", detail.Name)
	assert.Len(t, detail.Rows, len(res.Rows))
	assert.Equal(t, "small_industry_growth_rate", detail.Headers[6])

	assert.Equal(t, "shift_share_summary", summary.Name)
	require.Len(t, summary.Rows, len(res.Summary.Rows))
	assert.Equal(t, regional.ComponentSmallGrowth, summary.Rows[0][0])
	assert.InDelta(t, 20.0, summary.Rows[0][2].(float64), 1e-9)
}

func TestSpecializationTable(t *testing.T) {
	res, err := regional.SpecializationCoefficient(
		series(t, map[string]float64{"00": 100, "11": 40, "22": 60}),
		series(t, map[string]float64{"00": 1000, "11": 300, "22": 700}),
	)
	require.NoError(t, err)

	tbl := SpecializationTable(res)

	require.Len(t, tbl.Rows, len(res.Rows)+1)
	last := tbl.Rows[len(tbl.Rows)-1]
	assert.Equal(t, "coefficient", last[0])
	assert.InDelta(t, res.Coefficient, last[4].(float64), 1e-12)
}

func TestGeoQuotientTable(t *testing.T) {
	rows := []regional.GeoQuotient{
		{Geography: "01001", Industry: "11", Value: 5, Quotient: 1.25},
		{Geography: "01003", Industry: "11", Value: 0, Quotient: math.NaN()},
	}

	tbl := GeoQuotientTable(rows)

	assert.Equal(t, []string{"geography", "industry", "value", "location_quotient"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []interface{}{"01001", "11", 5.0, 1.25}, tbl.Rows[0])
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "31-33", "31-33"},
		{"whole float", 40.0, "40"},
		{"fraction", 0.125, "0.125"},
		{"nan", math.NaN(), ""},
		{"infinity", math.Inf(1), ""},
		{"int", 7, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCell(tt.in))
		})
	}
}
