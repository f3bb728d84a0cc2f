package exporter

import (
	"cbpmetrics/internal/regional"
)

// Table is a named result table ready for export. Cells hold either a string
// or a float64; NaN floats are exported as empty cells.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// LocationQuotientTable lays out a location quotient result
func LocationQuotientTable(res regional.LocationQuotientResult) Table {
	t := Table{
		Name:    "location_quotient",
		Headers: []string{"industry", "title", "small", "large", "small_share", "large_share", "location_quotient"},
	}
	for _, r := range res.Rows {
		t.Rows = append(t.Rows, []interface{}{
			r.Industry, regional.SectorTitle(r.Industry), r.Small, r.Large, r.SmallShare, r.LargeShare, r.Quotient,
		})
	}
	return t
}

// ShiftShareTables lays out the detail and summary of a shift-share result
func ShiftShareTables(res regional.ShiftShareResult) (detail, summary Table) {
	detail = Table{
		Name: "shift_share",
		Headers: []string{
			"industry", "title", "small_old", "small_new", "large_old", "large_new",
			"small_industry_growth_rate", "large_industry_growth_rate", "large_growth_rate",
			"large_growth_share", "industry_mix", "local_competitiveness",
		},
	}
	for _, r := range res.Rows {
		detail.Rows = append(detail.Rows, []interface{}{
			r.Industry, regional.SectorTitle(r.Industry),
			r.SmallOld, r.SmallNew, r.LargeOld, r.LargeNew,
			r.SmallGrowthRate, r.LargeIndustryGrowthRate, r.LargeGrowthRate,
			r.LargeGrowthShare, r.IndustryMix, r.LocalCompetitiveness,
		})
	}

	summary = Table{
		Name:    "shift_share_summary",
		Headers: []string{"component", "description", "absolute", "percentage"},
	}
	for _, s := range res.Summary.Rows {
		summary.Rows = append(summary.Rows, []interface{}{s.Component, s.Description, s.Absolute, s.Percentage})
	}
	return detail, summary
}

// SpecializationTable lays out a specialization result. The coefficient is
// appended as a final row.
func SpecializationTable(res regional.SpecializationResult) Table {
	t := Table{
		Name:    "specialization",
		Headers: []string{"industry", "title", "small_share", "large_share", "difference"},
	}
	for _, r := range res.Rows {
		t.Rows = append(t.Rows, []interface{}{
			r.Industry, regional.SectorTitle(r.Industry), r.SmallShare, r.LargeShare, r.Difference,
		})
	}
	t.Rows = append(t.Rows, []interface{}{"coefficient", "", "", "", res.Coefficient})
	return t
}

// GeoQuotientTable lays out a table location quotient result
func GeoQuotientTable(rows []regional.GeoQuotient) Table {
	t := Table{
		Name:    "location_quotient_table",
		Headers: []string{"geography", "industry", "value", "location_quotient"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []interface{}{r.Geography, r.Industry, r.Value, r.Quotient})
	}
	return t
}
