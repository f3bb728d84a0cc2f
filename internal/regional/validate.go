package regional

import (
	apperrors "cbpmetrics/internal/errors"
)

// validateSeries checks that s was built through NewSeries and holds data
func validateSeries(argument string, s Series) error {
	if s.values == nil || len(s.keys) == 0 {
		return apperrors.NewTypeError(argument, "not a keyed numeric series or empty")
	}
	return nil
}

// validateTotal checks that s designates a total key
func validateTotal(argument string, s Series) error {
	if !s.HasTotal() {
		return apperrors.NewIndexError(argument, "", "no total key designated")
	}
	return nil
}

// validatePair enforces the small/large preconditions shared by location
// quotient and specialization coefficient.
func validatePair(small, large Series) error {
	if err := validateSeries("small", small); err != nil {
		return err
	}
	if err := validateSeries("large", large); err != nil {
		return err
	}
	if err := validateTotal("small", small); err != nil {
		return err
	}
	if err := validateTotal("large", large); err != nil {
		return err
	}
	if small.TotalKey() != large.TotalKey() {
		return apperrors.NewIndexError("large", large.TotalKey(), "total key differs from small total key").
			WithContext("small_total_key", small.TotalKey())
	}
	if missing := small.MissingFrom(large); missing != "" {
		return apperrors.NewIndexError("large", missing, "missing industry present in small")
	}
	return nil
}

// validateShiftShare enforces the four-series preconditions of ShiftShare
func validateShiftShare(smallOld, smallNew, largeOld, largeNew Series) error {
	named := []struct {
		name string
		s    Series
	}{
		{"small_old", smallOld},
		{"small_new", smallNew},
		{"large_old", largeOld},
		{"large_new", largeNew},
	}
	for _, n := range named {
		if err := validateSeries(n.name, n.s); err != nil {
			return err
		}
	}

	total := smallOld.TotalKey()
	for _, n := range named[1:] {
		if n.s.TotalKey() != total {
			return apperrors.NewIndexError(n.name, n.s.TotalKey(), "total key differs from small_old total key").
				WithContext("small_old_total_key", total)
		}
	}

	if same, key := smallOld.SameIndex(smallNew); !same {
		return apperrors.NewIndexError("small_new", key, "index differs from small_old at")
	}
	if same, key := largeOld.SameIndex(largeNew); !same {
		return apperrors.NewIndexError("large_new", key, "index differs from large_old at")
	}
	if missing := smallOld.MissingFrom(largeOld); missing != "" {
		return apperrors.NewIndexError("large_old", missing, "missing industry present in small_old")
	}
	return nil
}
