package regional

import "math"

// DefaultTotalCode is the industry code CBP uses for the all-industries row of a geography
const DefaultTotalCode = "00"

// IndustryValue is one (geography, industry, metric) observation
type IndustryValue struct {
	Geography string  `json:"geography"`
	Industry  string  `json:"industry"`
	Value     float64 `json:"value"`
}

// Entry is one industry code and its value inside a Series
type Entry struct {
	Industry string  `json:"industry"`
	Value    float64 `json:"value"`
}

// LocationQuotientRow holds the location quotient of one industry
type LocationQuotientRow struct {
	Industry   string  `json:"industry"`
	Small      float64 `json:"small"`
	Large      float64 `json:"large"`
	SmallShare float64 `json:"small_share"` // small[i] / small[total]
	LargeShare float64 `json:"large_share"` // large[i] / large[total]
	Quotient   float64 `json:"location_quotient"`
}

// LocationQuotientResult is the per-industry output of LocationQuotient
type LocationQuotientResult struct {
	TotalKey string                `json:"total_key"`
	Rows     []LocationQuotientRow `json:"rows"`
}

// Get returns the location quotient of industry and whether it is present
func (r LocationQuotientResult) Get(industry string) (float64, bool) {
	for _, row := range r.Rows {
		if row.Industry == industry {
			return row.Quotient, true
		}
	}
	return 0, false
}

// Values returns the quotients keyed by industry code
func (r LocationQuotientResult) Values() map[string]float64 {
	out := make(map[string]float64, len(r.Rows))
	for _, row := range r.Rows {
		out[row.Industry] = row.Quotient
	}
	return out
}

// ShiftShareRow is the decomposition of one industry's growth
type ShiftShareRow struct {
	Industry string  `json:"industry"`
	SmallOld float64 `json:"small_old"`
	SmallNew float64 `json:"small_new"`
	LargeOld float64 `json:"large_old"`
	LargeNew float64 `json:"large_new"`

	SmallGrowthRate         float64 `json:"small_industry_growth_rate"`
	LargeIndustryGrowthRate float64 `json:"large_industry_growth_rate"`
	LargeGrowthRate         float64 `json:"large_growth_rate"`

	LargeGrowthShare     float64 `json:"large_growth_share"`
	IndustryMix          float64 `json:"industry_mix"`
	LocalCompetitiveness float64 `json:"local_competitiveness"`
}

// LocalGrowth returns the observed change of the industry in the small geography
func (r ShiftShareRow) LocalGrowth() float64 {
	return r.SmallNew - r.SmallOld
}

// Component names of the shift-share summary, in output order
const (
	ComponentSmallGrowth          = "small_growth"
	ComponentLargeGrowth          = "large_growth"
	ComponentLargeGrowthShare     = "large_growth_share"
	ComponentIndustryMix          = "industry_mix"
	ComponentLocalCompetitiveness = "local_competitiveness"
)

// SummaryRow is one aggregated component of a shift-share analysis
type SummaryRow struct {
	Component   string  `json:"component"`
	Description string  `json:"description"`
	Absolute    float64 `json:"absolute"`
	Percentage  float64 `json:"percentage"`
}

// ShiftShareSummary holds the five summary components
type ShiftShareSummary struct {
	Rows []SummaryRow `json:"rows"`
}

// Row returns the summary row for component
func (s ShiftShareSummary) Row(component string) (SummaryRow, bool) {
	for _, row := range s.Rows {
		if row.Component == component {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// ShiftShareResult is the detail table and summary of ShiftShare
type ShiftShareResult struct {
	TotalKey string            `json:"total_key,omitempty"`
	Rows     []ShiftShareRow   `json:"rows"`
	Summary  ShiftShareSummary `json:"summary"`
}

// SpecializationRow compares the share of one industry in both geographies
type SpecializationRow struct {
	Industry   string  `json:"industry"`
	SmallShare float64 `json:"small_share"`
	LargeShare float64 `json:"large_share"`
	Difference float64 `json:"difference"`
}

// SpecializationResult is the detail table and coefficient of SpecializationCoefficient
type SpecializationResult struct {
	TotalKey    string              `json:"total_key"`
	Rows        []SpecializationRow `json:"rows"`
	Coefficient float64             `json:"coefficient"`
}

// GeoQuotient is one table row extended with its location quotient
type GeoQuotient struct {
	Geography string  `json:"geography"`
	Industry  string  `json:"industry"`
	Value     float64 `json:"value"`
	Quotient  float64 `json:"location_quotient"`
}

// IsSentinel reports whether v is the non-numeric value used for undefined ratios
func IsSentinel(v float64) bool {
	return math.IsNaN(v)
}

// ratio divides num by den, yielding the NaN sentinel when den is zero
func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
