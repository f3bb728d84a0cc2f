package regional

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cbpmetrics/internal/errors"
)

// shiftShareFixture is a county/state pair observed in two years
type shiftShareFixture struct {
	smallOld, smallNew, largeOld, largeNew Series
}

func newShiftShareFixture(t *testing.T) shiftShareFixture {
	t.Helper()
	return shiftShareFixture{
		smallOld: mustSeries(t, map[string]float64{"00": 100, "11": 40, "22": 60}, DefaultTotalCode),
		smallNew: mustSeries(t, map[string]float64{"00": 120, "11": 50, "22": 70}, DefaultTotalCode),
		largeOld: mustSeries(t, map[string]float64{"00": 1000, "11": 300, "22": 700}, DefaultTotalCode),
		largeNew: mustSeries(t, map[string]float64{"00": 1100, "11": 360, "22": 740}, DefaultTotalCode),
	}
}

func (f shiftShareFixture) run() (ShiftShareResult, error) {
	return ShiftShare(f.smallOld, f.smallNew, f.largeOld, f.largeNew)
}

func rowFor(t *testing.T, res ShiftShareResult, industry string) ShiftShareRow {
	t.Helper()
	for _, r := range res.Rows {
		if r.Industry == industry {
			return r
		}
	}
	t.Fatalf("no shift-share row for %s", industry)
	return ShiftShareRow{}
}

func TestShiftShare(t *testing.T) {
	res, err := newShiftShareFixture(t).run()
	require.NoError(t, err)

	assert.Equal(t, DefaultTotalCode, res.TotalKey)
	require.Len(t, res.Rows, 3)

	tests := []struct {
		industry    string
		smallRate   float64
		largeRate   float64
		growthShare float64
		mix         float64
		competitive float64
	}{
		{"11", 0.25, 0.2, 4, 4, 2},
		{"22", 10.0 / 60, 40.0 / 700, 6, 60 * (40.0/700 - 0.1), 60 * (10.0/60 - 40.0/700)},
	}

	for _, tt := range tests {
		t.Run("industry "+tt.industry, func(t *testing.T) {
			row := rowFor(t, res, tt.industry)
			assert.InDelta(t, 0.1, row.LargeGrowthRate, tolerance)
			assert.InDelta(t, tt.smallRate, row.SmallGrowthRate, tolerance)
			assert.InDelta(t, tt.largeRate, row.LargeIndustryGrowthRate, tolerance)
			assert.InDelta(t, tt.growthShare, row.LargeGrowthShare, tolerance)
			assert.InDelta(t, tt.mix, row.IndustryMix, tolerance)
			assert.InDelta(t, tt.competitive, row.LocalCompetitiveness, tolerance)
		})
	}
}

func TestShiftShare_ComponentsAddUp(t *testing.T) {
	res, err := newShiftShareFixture(t).run()
	require.NoError(t, err)

	for _, row := range res.Rows {
		sum := row.LargeGrowthShare + row.IndustryMix + row.LocalCompetitiveness
		assert.InDelta(t, row.LocalGrowth(), sum, tolerance, "industry %s", row.Industry)
	}

	summary := res.Summary
	growth, ok := summary.Row(ComponentSmallGrowth)
	require.True(t, ok)
	lgs, _ := summary.Row(ComponentLargeGrowthShare)
	mix, _ := summary.Row(ComponentIndustryMix)
	comp, _ := summary.Row(ComponentLocalCompetitiveness)

	assert.InDelta(t, growth.Absolute, lgs.Absolute+mix.Absolute+comp.Absolute, tolerance)
	assert.InDelta(t, 1.0, lgs.Percentage+mix.Percentage+comp.Percentage, tolerance)
}

func TestShiftShare_Summary(t *testing.T) {
	res, err := newShiftShareFixture(t).run()
	require.NoError(t, err)

	want := []struct {
		component string
		absolute  float64
		pct       float64
	}{
		{ComponentSmallGrowth, 20, 0.2},
		{ComponentLargeGrowth, 100, 0.1},
		{ComponentLargeGrowthShare, 10, 0.5},
		{ComponentIndustryMix, 4 + 60*(40.0/700-0.1), (4 + 60*(40.0/700-0.1)) / 20},
		{ComponentLocalCompetitiveness, 2 + 60*(10.0/60-40.0/700), (2 + 60*(10.0/60-40.0/700)) / 20},
	}

	require.Len(t, res.Summary.Rows, len(want))
	for i, w := range want {
		row := res.Summary.Rows[i]
		assert.Equal(t, w.component, row.Component)
		assert.NotEmpty(t, row.Description)
		assert.InDelta(t, w.absolute, row.Absolute, tolerance, w.component)
		assert.InDelta(t, w.pct, row.Percentage, tolerance, w.component)
	}
}

func TestShiftShare_WithoutTotalKey(t *testing.T) {
	smallOld := mustSeries(t, map[string]float64{"11": 40, "22": 60}, "")
	smallNew := mustSeries(t, map[string]float64{"11": 50, "22": 70}, "")
	largeOld := mustSeries(t, map[string]float64{"11": 300, "22": 700}, "")
	largeNew := mustSeries(t, map[string]float64{"11": 360, "22": 740}, "")

	res, err := ShiftShare(smallOld, smallNew, largeOld, largeNew)
	require.NoError(t, err)

	assert.Empty(t, res.TotalKey)
	require.Len(t, res.Rows, 2)
	for _, row := range res.Rows {
		assert.InDelta(t, 0.1, row.LargeGrowthRate, tolerance)
	}

	growth, _ := res.Summary.Row(ComponentSmallGrowth)
	assert.InDelta(t, 20.0, growth.Absolute, tolerance)
}

func TestShiftShare_ZeroBaseYear(t *testing.T) {
	f := newShiftShareFixture(t)
	f.smallOld = mustSeries(t, map[string]float64{"00": 60, "11": 0, "22": 60}, DefaultTotalCode)

	res, err := f.run()
	require.NoError(t, err)

	row := rowFor(t, res, "11")
	assert.True(t, IsSentinel(row.SmallGrowthRate))
	assert.True(t, IsSentinel(row.LocalCompetitiveness))
	assert.Equal(t, 0.0, row.LargeGrowthShare)

	other := rowFor(t, res, "22")
	assert.False(t, math.IsNaN(other.LocalCompetitiveness))
}

func TestShiftShare_Errors(t *testing.T) {
	reordered := mustOrdered(t, "00", Entry{"00", 120}, Entry{"22", 70}, Entry{"11", 50})
	shorter := mustSeries(t, map[string]float64{"00": 1100, "11": 360}, DefaultTotalCode)
	noTotal := mustSeries(t, map[string]float64{"00": 120, "11": 50, "22": 70}, "")

	tests := []struct {
		name     string
		mutate   func(*shiftShareFixture)
		wantKind apperrors.ErrorType
		wantArg  string
	}{
		{
			name:     "small_old not a series",
			mutate:   func(f *shiftShareFixture) { f.smallOld = Series{} },
			wantKind: apperrors.ErrTypeType,
			wantArg:  "small_old",
		},
		{
			name:     "large_new not a series",
			mutate:   func(f *shiftShareFixture) { f.largeNew = Series{} },
			wantKind: apperrors.ErrTypeType,
			wantArg:  "large_new",
		},
		{
			name:     "small periods reordered",
			mutate:   func(f *shiftShareFixture) { f.smallNew = reordered },
			wantKind: apperrors.ErrTypeIndex,
			wantArg:  "small_new",
		},
		{
			name:     "large periods differ",
			mutate:   func(f *shiftShareFixture) { f.largeNew = shorter },
			wantKind: apperrors.ErrTypeIndex,
			wantArg:  "large_new",
		},
		{
			name:     "total key not shared",
			mutate:   func(f *shiftShareFixture) { f.smallNew = noTotal },
			wantKind: apperrors.ErrTypeIndex,
			wantArg:  "small_new",
		},
		{
			name: "small industry missing from large",
			mutate: func(f *shiftShareFixture) {
				f.smallOld = mustSeries(t, map[string]float64{"00": 100, "11": 40, "22": 50, "99": 10}, DefaultTotalCode)
				f.smallNew = mustSeries(t, map[string]float64{"00": 120, "11": 50, "22": 60, "99": 10}, DefaultTotalCode)
			},
			wantKind: apperrors.ErrTypeIndex,
			wantArg:  "large_old",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newShiftShareFixture(t)
			tt.mutate(&f)

			_, err := f.run()
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperrors.TypeOf(err))
			assert.Contains(t, err.Error(), tt.wantArg)
		})
	}
}
