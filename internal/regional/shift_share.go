package regional

// Summary row descriptions
const (
	descSmallGrowth          = "Growth of the local geography"
	descLargeGrowth          = "Growth of the reference geography"
	descLargeGrowthShare     = "Growth expected had every local industry grown at the reference rate"
	descIndustryMix          = "Growth attributable to the local industry mix"
	descLocalCompetitiveness = "Growth attributable to local factors beyond industry trends"
)

// ShiftShare decomposes the change of each industry in the small geography
// between two periods into three additive components:
//
//	large_growth_share    = small_old[i] * G
//	industry_mix          = small_old[i] * (G[i] - G)
//	local_competitiveness = small_old[i] * (g[i] - G[i])
//
// where G is the overall growth rate of the large geography, G[i] the growth
// rate of industry i in the large geography and g[i] its growth rate in the
// small geography. The components add up to small_new[i] - small_old[i].
//
// The old/new series of each geography must share an identical index, the
// small index must be a subset of the large index and all four series must
// designate the same total key (or none). Zero denominators yield NaN cells.
func ShiftShare(smallOld, smallNew, largeOld, largeNew Series) (ShiftShareResult, error) {
	if err := validateShiftShare(smallOld, smallNew, largeOld, largeNew); err != nil {
		return ShiftShareResult{}, err
	}

	total := smallOld.TotalKey()
	largeRate := overallGrowthRate(largeOld, largeNew)

	rows := make([]ShiftShareRow, 0, smallOld.Len())
	for _, industry := range smallOld.keys {
		so := smallOld.values[industry]
		sn := smallNew.values[industry]
		lo := largeOld.values[industry]
		ln := largeNew.values[industry]

		smallRate := ratio(sn-so, so)
		largeIndustryRate := ratio(ln-lo, lo)

		rows = append(rows, ShiftShareRow{
			Industry:                industry,
			SmallOld:                so,
			SmallNew:                sn,
			LargeOld:                lo,
			LargeNew:                ln,
			SmallGrowthRate:         smallRate,
			LargeIndustryGrowthRate: largeIndustryRate,
			LargeGrowthRate:         largeRate,
			LargeGrowthShare:        so * largeRate,
			IndustryMix:             so * (largeIndustryRate - largeRate),
			LocalCompetitiveness:    so * (smallRate - largeIndustryRate),
		})
	}

	return ShiftShareResult{
		TotalKey: total,
		Rows:     rows,
		Summary:  summarizeShiftShare(rows, smallOld, smallNew, largeOld, largeNew),
	}, nil
}

// overallGrowthRate is the growth of the total key, or of the sum of all
// industries when no total key is designated.
func overallGrowthRate(before, after Series) float64 {
	if before.HasTotal() {
		return ratio(after.Total()-before.Total(), before.Total())
	}
	return ratio(after.Sum()-before.Sum(), before.Sum())
}

// summarizeShiftShare aggregates the detail rows. The total row is a derived
// aggregate and is left out of every sum.
func summarizeShiftShare(rows []ShiftShareRow, smallOld, smallNew, largeOld, largeNew Series) ShiftShareSummary {
	smallOldSum := smallOld.Sum()
	smallNewSum := smallNew.Sum()
	largeOldSum := largeOld.Sum()
	largeNewSum := largeNew.Sum()

	var lgs, mix, comp float64
	for _, row := range rows {
		if row.Industry == smallOld.TotalKey() {
			continue
		}
		lgs += row.LargeGrowthShare
		mix += row.IndustryMix
		comp += row.LocalCompetitiveness
	}

	smallGrowth := smallNewSum - smallOldSum
	largeGrowth := largeNewSum - largeOldSum

	return ShiftShareSummary{Rows: []SummaryRow{
		{ComponentSmallGrowth, descSmallGrowth, smallGrowth, ratio(smallGrowth, smallOldSum)},
		{ComponentLargeGrowth, descLargeGrowth, largeGrowth, ratio(largeGrowth, largeOldSum)},
		{ComponentLargeGrowthShare, descLargeGrowthShare, lgs, ratio(lgs, smallGrowth)},
		{ComponentIndustryMix, descIndustryMix, mix, ratio(mix, smallGrowth)},
		{ComponentLocalCompetitiveness, descLocalCompetitiveness, comp, ratio(comp, smallGrowth)},
	}}
}
