package regional

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cbpmetrics/internal/errors"
)

func sampleTable() IndustryTable {
	return NewIndustryTable([]IndustryValue{
		{Geography: "001", Industry: "00", Value: 100},
		{Geography: "001", Industry: "11", Value: 40},
		{Geography: "001", Industry: "22", Value: 60},
		{Geography: "001", Industry: "111", Value: 30},
		{Geography: "003", Industry: "00", Value: 50},
		{Geography: "003", Industry: "11", Value: 10},
		{Geography: "003", Industry: "22", Value: 40},
		{Geography: "003", Industry: "111", Value: 5},
		{Geography: "003", Industry: "31-33", Value: 0},
	})
}

func industries(table IndustryTable) []string {
	var out []string
	for _, r := range table.Rows() {
		out = append(out, r.Geography+"/"+r.Industry)
	}
	return out
}

func TestIndustryTable_Filters(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name string
		got  IndustryTable
		want []string
	}{
		{
			name: "two digit",
			got:  table.TwoDigit(),
			want: []string{"001/00", "001/11", "001/22", "003/00", "003/11", "003/22", "003/31-33"},
		},
		{
			name: "two digit one county",
			got:  table.TwoDigit("003"),
			want: []string{"003/00", "003/11", "003/22", "003/31-33"},
		},
		{
			name: "three digit",
			got:  table.ThreeDigit(),
			want: []string{"001/00", "001/111", "003/00", "003/111"},
		},
		{
			name: "geography",
			got:  table.Geography("001"),
			want: []string{"001/00", "001/11", "001/22", "001/111"},
		},
		{
			name: "unknown geography",
			got:  table.Geography("999"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, industries(tt.got)); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}

	assert.Equal(t, 9, table.Len(), "filters must not modify the source table")
}

func TestIndustryTable_Geographies(t *testing.T) {
	assert.Equal(t, []string{"001", "003"}, sampleTable().Geographies())
}

func TestIndustryTable_Totals(t *testing.T) {
	totals, err := sampleTable().TwoDigit().Totals(DefaultTotalCode)
	require.NoError(t, err)

	want := []Entry{{"00", 150}, {"11", 50}, {"22", 100}, {"31-33", 0}}
	if diff := cmp.Diff(want, totals.Entries()); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 150.0, totals.Total())

	withoutTotal, err := sampleTable().Geography("001").TwoDigit().Totals("T")
	require.NoError(t, err)
	assert.False(t, withoutTotal.HasTotal())
}

func TestIndustryTable_Series(t *testing.T) {
	s, err := sampleTable().TwoDigit().Series("001", DefaultTotalCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"00", "11", "22"}, s.Keys())

	_, err = sampleTable().Series("999", DefaultTotalCode)
	assert.True(t, apperrors.IsIndex(err))

	dup := NewIndustryTable([]IndustryValue{
		{Geography: "001", Industry: "00", Value: 1},
		{Geography: "001", Industry: "11", Value: 1},
		{Geography: "001", Industry: "11", Value: 2},
	})
	_, err = dup.Series("001", DefaultTotalCode)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeIndex, appErr.Type)
	assert.Equal(t, "001", appErr.Context["geography"])
}

func TestTableLocationQuotient(t *testing.T) {
	table := sampleTable().TwoDigit()
	reference, err := table.Totals(DefaultTotalCode)
	require.NoError(t, err)

	got, err := TableLocationQuotient(table, reference, DefaultTotalCode)
	require.NoError(t, err)
	require.Len(t, got, table.Len())

	want := []GeoQuotient{
		{"001", "00", 100, 1},
		{"001", "11", 40, 1.2},
		{"001", "22", 60, 0.9},
		{"003", "00", 50, 1},
		{"003", "11", 10, 0.6},
		{"003", "22", 40, 1.2},
	}
	opts := cmpopts.EquateApprox(0, tolerance)
	if diff := cmp.Diff(want, got[:6], opts); diff != "" {
		t.Errorf("location quotients mismatch (-want +got):\n%s", diff)
	}
	// 31-33 is zero in the reference
	assert.True(t, IsSentinel(got[6].Quotient))
}

func TestTableLocationQuotient_UnknownIndustry(t *testing.T) {
	table := sampleTable().ThreeDigit().Geography("001")
	reference := stateSeries(t)

	_, err := TableLocationQuotient(table, reference, DefaultTotalCode)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeIndex, appErr.Type)
	assert.Equal(t, "001", appErr.Context["geography"])
}

func TestIndustryTable_PaddedCodes(t *testing.T) {
	table := NewIndustryTable([]IndustryValue{
		{Geography: "001", Industry: "------", Value: 100},
		{Geography: "001", Industry: "11----", Value: 40},
		{Geography: "001", Industry: "113///", Value: 25},
		{Geography: "001", Industry: "1133//", Value: 10},
		{Geography: "001", Industry: "31----", Value: 60},
		{Geography: "001", Industry: "311///", Value: 60},
	})

	tests := []struct {
		name string
		got  IndustryTable
		want []string
	}{
		{
			name: "two digit",
			got:  table.TwoDigit(),
			want: []string{"001/------", "001/11----", "001/31----"},
		},
		{
			name: "three digit",
			got:  table.ThreeDigit(),
			want: []string{"001/------", "001/113///", "001/311///"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, industries(tt.got)); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIndustryLevel(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"00", 2},
		{"11", 2},
		{"31-33", 2},
		{"11----", 2},
		{"113///", 3},
		{"1133//", 4},
		{"111110", 6},
		{"------", 0},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, industryLevel(tt.code))
		})
	}
}

func TestGeographyQuotients(t *testing.T) {
	table := sampleTable().TwoDigit()
	reference, err := table.Totals(DefaultTotalCode)
	require.NoError(t, err)

	got, err := GeographyQuotients(table, "003", reference, DefaultTotalCode)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.InDelta(t, 0.6, got["11"], tolerance)

	_, err = GeographyQuotients(table, "999", reference, DefaultTotalCode)
	require.Error(t, err)
	assert.True(t, apperrors.IsIndex(err))
}

func TestJoinQuotients(t *testing.T) {
	table := sampleTable().Geography("001")

	got := JoinQuotients(table, map[string]map[string]float64{
		"001": {"00": 1, "11": 2, "22": 0.5},
	})

	require.Len(t, got, table.Len())
	assert.Equal(t, GeoQuotient{Geography: "001", Industry: "11", Value: 40, Quotient: 2}, got[1])
	assert.True(t, IsSentinel(got[3].Quotient), "rows without a quotient get the sentinel")
	assert.Equal(t, 4, sampleTable().Geography("001").Len(), "source table is unchanged")
}
