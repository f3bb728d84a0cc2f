package http

import (
	"errors"
	"math"

	apperrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/regional"
)

// EntryDTO is one industry value of a series
type EntryDTO struct {
	Industry string   `json:"industry" validate:"required,industry"`
	Value    *float64 `json:"value" validate:"required"`
}

// SeriesDTO is a series as sent by clients. Entries keep their order. An
// empty total key selects the server's configured total code.
type SeriesDTO struct {
	TotalKey string     `json:"total_key,omitempty" validate:"omitempty,industry"`
	Entries  []EntryDTO `json:"entries" validate:"required,min=1,dive"`
}

// PairRequest is the body of the location quotient and specialization endpoints
type PairRequest struct {
	Small SeriesDTO `json:"small"`
	Large SeriesDTO `json:"large"`
}

// ShiftShareRequest is the body of the shift-share endpoint
type ShiftShareRequest struct {
	SmallOld SeriesDTO `json:"small_old"`
	SmallNew SeriesDTO `json:"small_new"`
	LargeOld SeriesDTO `json:"large_old"`
	LargeNew SeriesDTO `json:"large_new"`
}

// TableRowDTO is one observation of a CBP table
type TableRowDTO struct {
	Geography string   `json:"geography" validate:"required"`
	Industry  string   `json:"industry" validate:"required,industry"`
	Value     *float64 `json:"value" validate:"required"`
}

// TableRequest is the body of the table location quotient endpoint. Without
// a reference the table's own aggregate is used.
type TableRequest struct {
	Rows      []TableRowDTO `json:"rows" validate:"required,min=1,dive"`
	Reference *SeriesDTO    `json:"reference,omitempty"`
	Level     string        `json:"level,omitempty" validate:"omitempty,oneof=all two_digit three_digit"`
}

// toSeries builds the domain series. Construction errors name the request
// field they came from.
func (d SeriesDTO) toSeries(field, defaultTotal string) (regional.Series, error) {
	totalKey := d.TotalKey
	if totalKey == "" {
		totalKey = defaultTotal
	}

	entries := make([]regional.Entry, 0, len(d.Entries))
	for _, e := range d.Entries {
		var v float64
		if e.Value != nil {
			v = *e.Value
		}
		entries = append(entries, regional.Entry{Industry: e.Industry, Value: v})
	}

	s, err := regional.NewSeries(entries, totalKey)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("argument", field)
		}
		return regional.Series{}, err
	}
	return s, nil
}

func (t TableRequest) toTable() regional.IndustryTable {
	rows := make([]regional.IndustryValue, 0, len(t.Rows))
	for _, r := range t.Rows {
		var v float64
		if r.Value != nil {
			v = *r.Value
		}
		rows = append(rows, regional.IndustryValue{Geography: r.Geography, Industry: r.Industry, Value: v})
	}
	return regional.NewIndustryTable(rows)
}

// nullable maps undefined ratios to JSON null
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// LocationQuotientRowDTO is one row of a location quotient response
type LocationQuotientRowDTO struct {
	Industry   string   `json:"industry"`
	Title      string   `json:"title,omitempty"`
	Small      float64  `json:"small"`
	Large      float64  `json:"large"`
	SmallShare *float64 `json:"small_share"`
	LargeShare *float64 `json:"large_share"`
	Quotient   *float64 `json:"quotient"`
}

// LocationQuotientResponse is the location quotient response
type LocationQuotientResponse struct {
	TotalKey string                   `json:"total_key"`
	Rows     []LocationQuotientRowDTO `json:"rows"`
}

func newLocationQuotientResponse(res regional.LocationQuotientResult) LocationQuotientResponse {
	rows := make([]LocationQuotientRowDTO, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, LocationQuotientRowDTO{
			Industry:   r.Industry,
			Title:      regional.SectorTitle(r.Industry),
			Small:      r.Small,
			Large:      r.Large,
			SmallShare: nullable(r.SmallShare),
			LargeShare: nullable(r.LargeShare),
			Quotient:   nullable(r.Quotient),
		})
	}
	return LocationQuotientResponse{TotalKey: res.TotalKey, Rows: rows}
}

// ShiftShareRowDTO is one industry of a shift-share response
type ShiftShareRowDTO struct {
	Industry                string   `json:"industry"`
	Title                   string   `json:"title,omitempty"`
	SmallOld                float64  `json:"small_old"`
	SmallNew                float64  `json:"small_new"`
	LargeOld                float64  `json:"large_old"`
	LargeNew                float64  `json:"large_new"`
	SmallGrowthRate         *float64 `json:"small_industry_growth_rate"`
	LargeIndustryGrowthRate *float64 `json:"large_industry_growth_rate"`
	LargeGrowthRate         *float64 `json:"large_growth_rate"`
	LargeGrowthShare        *float64 `json:"large_growth_share"`
	IndustryMix             *float64 `json:"industry_mix"`
	LocalCompetitiveness    *float64 `json:"local_competitiveness"`
}

// SummaryRowDTO is one component of the shift-share summary
type SummaryRowDTO struct {
	Component   string   `json:"component"`
	Description string   `json:"description"`
	Absolute    *float64 `json:"absolute"`
	Percentage  *float64 `json:"percentage"`
}

// ShiftShareResponse is the shift-share response
type ShiftShareResponse struct {
	TotalKey string             `json:"total_key,omitempty"`
	Rows     []ShiftShareRowDTO `json:"rows"`
	Summary  []SummaryRowDTO    `json:"summary"`
}

func newShiftShareResponse(res regional.ShiftShareResult) ShiftShareResponse {
	rows := make([]ShiftShareRowDTO, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, ShiftShareRowDTO{
			Industry:                r.Industry,
			Title:                   regional.SectorTitle(r.Industry),
			SmallOld:                r.SmallOld,
			SmallNew:                r.SmallNew,
			LargeOld:                r.LargeOld,
			LargeNew:                r.LargeNew,
			SmallGrowthRate:         nullable(r.SmallGrowthRate),
			LargeIndustryGrowthRate: nullable(r.LargeIndustryGrowthRate),
			LargeGrowthRate:         nullable(r.LargeGrowthRate),
			LargeGrowthShare:        nullable(r.LargeGrowthShare),
			IndustryMix:             nullable(r.IndustryMix),
			LocalCompetitiveness:    nullable(r.LocalCompetitiveness),
		})
	}

	summary := make([]SummaryRowDTO, 0, len(res.Summary.Rows))
	for _, s := range res.Summary.Rows {
		summary = append(summary, SummaryRowDTO{
			Component:   s.Component,
			Description: s.Description,
			Absolute:    nullable(s.Absolute),
			Percentage:  nullable(s.Percentage),
		})
	}
	return ShiftShareResponse{TotalKey: res.TotalKey, Rows: rows, Summary: summary}
}

// SpecializationRowDTO is one industry of a specialization response
type SpecializationRowDTO struct {
	Industry   string   `json:"industry"`
	SmallShare *float64 `json:"small_share"`
	LargeShare *float64 `json:"large_share"`
	Difference *float64 `json:"difference"`
}

// SpecializationResponse is the specialization coefficient response
type SpecializationResponse struct {
	TotalKey    string                 `json:"total_key"`
	Coefficient *float64               `json:"coefficient"`
	Rows        []SpecializationRowDTO `json:"rows"`
}

func newSpecializationResponse(res regional.SpecializationResult) SpecializationResponse {
	rows := make([]SpecializationRowDTO, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, SpecializationRowDTO{
			Industry:   r.Industry,
			SmallShare: nullable(r.SmallShare),
			LargeShare: nullable(r.LargeShare),
			Difference: nullable(r.Difference),
		})
	}
	return SpecializationResponse{
		TotalKey:    res.TotalKey,
		Coefficient: nullable(res.Coefficient),
		Rows:        rows,
	}
}

// GeoQuotientDTO is one row of a table location quotient response
type GeoQuotientDTO struct {
	Geography string   `json:"geography"`
	Industry  string   `json:"industry"`
	Value     float64  `json:"value"`
	Quotient  *float64 `json:"quotient"`
}

// TableResponse is the table location quotient response
type TableResponse struct {
	Geographies int              `json:"geographies"`
	Rows        []GeoQuotientDTO `json:"rows"`
}

func newTableResponse(rows []regional.GeoQuotient) TableResponse {
	out := make([]GeoQuotientDTO, 0, len(rows))
	geos := make(map[string]struct{})
	for _, r := range rows {
		geos[r.Geography] = struct{}{}
		out = append(out, GeoQuotientDTO{
			Geography: r.Geography,
			Industry:  r.Industry,
			Value:     r.Value,
			Quotient:  nullable(r.Quotient),
		})
	}
	return TableResponse{Geographies: len(geos), Rows: out}
}
