package regional

import (
	"math"
	"sort"

	apperrors "cbpmetrics/internal/errors"
)

// Series maps industry codes to values for one geography at one point in time.
// Keys keep insertion order. A Series optionally designates one key as the
// all-industries total; when set, the key is guaranteed to exist.
//
// A Series is immutable once built and safe for concurrent use.
type Series struct {
	keys     []string
	values   map[string]float64
	totalKey string
}

// NewSeries builds a Series from entries. totalKey may be empty for a series
// without a designated total.
func NewSeries(entries []Entry, totalKey string) (Series, error) {
	s := Series{
		keys:     make([]string, 0, len(entries)),
		values:   make(map[string]float64, len(entries)),
		totalKey: totalKey,
	}

	for _, e := range entries {
		if e.Industry == "" {
			return Series{}, apperrors.NewTypeError("series", "empty industry code")
		}
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return Series{}, apperrors.NewTypeError("series", "non-finite value for industry "+e.Industry).
				WithContext("key", e.Industry)
		}
		if _, dup := s.values[e.Industry]; dup {
			return Series{}, apperrors.NewIndexError("series", e.Industry, "duplicate industry code")
		}
		s.keys = append(s.keys, e.Industry)
		s.values[e.Industry] = e.Value
	}

	if totalKey != "" {
		if _, ok := s.values[totalKey]; !ok {
			return Series{}, apperrors.NewIndexError("series", totalKey, "missing total key")
		}
	}

	return s, nil
}

// SeriesFromMap builds a Series from a map. Keys are ordered lexically, which
// places the CBP total code "00" first.
func SeriesFromMap(values map[string]float64, totalKey string) (Series, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Industry: k, Value: values[k]})
	}
	return NewSeries(entries, totalKey)
}

// Len returns the number of industries in the series
func (s Series) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the industry codes in order
func (s Series) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Entries returns a copy of the series content in order
func (s Series) Entries() []Entry {
	out := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Entry{Industry: k, Value: s.values[k]})
	}
	return out
}

// Value returns the value for industry and whether it exists
func (s Series) Value(industry string) (float64, bool) {
	v, ok := s.values[industry]
	return v, ok
}

// Has reports whether industry is a key of the series
func (s Series) Has(industry string) bool {
	_, ok := s.values[industry]
	return ok
}

// TotalKey returns the designated total key, or "" when none is set
func (s Series) TotalKey() string {
	return s.totalKey
}

// HasTotal reports whether the series designates a total key
func (s Series) HasTotal() bool {
	return s.totalKey != ""
}

// Total returns the value of the total key, or NaN when none is set
func (s Series) Total() float64 {
	if s.totalKey == "" {
		return math.NaN()
	}
	return s.values[s.totalKey]
}

// WithTotalKey returns a copy of the series designating key as its total
func (s Series) WithTotalKey(key string) (Series, error) {
	return NewSeries(s.Entries(), key)
}

// Scale returns a copy of the series with every value multiplied by factor.
// A non-finite factor, or a product that overflows, is a TypeKind error.
func (s Series) Scale(factor float64) (Series, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return Series{}, apperrors.NewTypeError("factor", "scale factor must be finite")
	}
	entries := s.Entries()
	for i := range entries {
		entries[i].Value *= factor
	}
	return NewSeries(entries, s.totalKey)
}

// Sum adds every value except the total key
func (s Series) Sum() float64 {
	var sum float64
	for _, k := range s.keys {
		if k == s.totalKey {
			continue
		}
		sum += s.values[k]
	}
	return sum
}

// MissingFrom returns the first key of s that other lacks, or "" when s's
// key set is a subset of other's.
func (s Series) MissingFrom(other Series) string {
	for _, k := range s.keys {
		if !other.Has(k) {
			return k
		}
	}
	return ""
}

// SameIndex reports whether both series hold the same keys in the same order.
// When they differ, the first offending key is returned.
func (s Series) SameIndex(other Series) (bool, string) {
	n := len(s.keys)
	if len(other.keys) < n {
		n = len(other.keys)
	}
	for i := 0; i < n; i++ {
		if s.keys[i] != other.keys[i] {
			return false, other.keys[i]
		}
	}
	switch {
	case len(other.keys) > n:
		return false, other.keys[n]
	case len(s.keys) > n:
		return false, s.keys[n]
	}
	return true, ""
}
