package regional

// LocationQuotient compares the concentration of each industry in small with
// its concentration in large:
//
//	LQ[i] = (small[i] / small[total]) / (large[i] / large[total])
//
// Both series must designate the same total key and every key of small must
// exist in large. One row is returned per key of small, in small's order,
// including the total row. A zero denominator yields NaN for that row only.
func LocationQuotient(small, large Series) (LocationQuotientResult, error) {
	if err := validatePair(small, large); err != nil {
		return LocationQuotientResult{}, err
	}

	smallTotal := small.Total()
	largeTotal := large.Total()

	rows := make([]LocationQuotientRow, 0, small.Len())
	for _, industry := range small.keys {
		s := small.values[industry]
		l := large.values[industry]

		smallShare := ratio(s, smallTotal)
		largeShare := ratio(l, largeTotal)

		rows = append(rows, LocationQuotientRow{
			Industry:   industry,
			Small:      s,
			Large:      l,
			SmallShare: smallShare,
			LargeShare: largeShare,
			Quotient:   ratio(smallShare, largeShare),
		})
	}

	return LocationQuotientResult{
		TotalKey: small.TotalKey(),
		Rows:     rows,
	}, nil
}
