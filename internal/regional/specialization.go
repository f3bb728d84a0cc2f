package regional

import "math"

// SpecializationCoefficient measures how far the industry mix of small departs
// from the industry mix of large. For every industry except the total it
// compares the industry's share of each geography's total; the coefficient
// is half the sum of the absolute share differences and lies in [0, 1] for
// non-negative data.
//
// Preconditions and errors are those of LocationQuotient. A zero total turns
// the affected shares, and therefore the coefficient, into NaN.
func SpecializationCoefficient(small, large Series) (SpecializationResult, error) {
	if err := validatePair(small, large); err != nil {
		return SpecializationResult{}, err
	}

	total := small.TotalKey()
	smallTotal := small.Total()
	largeTotal := large.Total()

	rows := make([]SpecializationRow, 0, small.Len()-1)
	var sum float64
	for _, industry := range small.keys {
		if industry == total {
			continue
		}
		smallShare := ratio(small.values[industry], smallTotal)
		largeShare := ratio(large.values[industry], largeTotal)
		diff := math.Abs(smallShare - largeShare)

		rows = append(rows, SpecializationRow{
			Industry:   industry,
			SmallShare: smallShare,
			LargeShare: largeShare,
			Difference: diff,
		})
		sum += diff
	}

	return SpecializationResult{
		TotalKey:    total,
		Rows:        rows,
		Coefficient: sum / 2,
	}, nil
}
