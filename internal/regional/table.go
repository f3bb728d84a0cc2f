package regional

import (
	"errors"
	"math"
	"sort"

	apperrors "cbpmetrics/internal/errors"
)

// IndustryTable is an immutable collection of CBP-style observations covering
// one or more geographies.
type IndustryTable struct {
	rows []IndustryValue
}

// NewIndustryTable copies rows into a new table
func NewIndustryTable(rows []IndustryValue) IndustryTable {
	out := make([]IndustryValue, len(rows))
	copy(out, rows)
	return IndustryTable{rows: out}
}

// Rows returns a copy of the table rows
func (t IndustryTable) Rows() []IndustryValue {
	out := make([]IndustryValue, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of rows
func (t IndustryTable) Len() int {
	return len(t.rows)
}

// Geographies returns the distinct geography identifiers, sorted
func (t IndustryTable) Geographies() []string {
	seen := make(map[string]bool)
	var geos []string
	for _, r := range t.rows {
		if !seen[r.Geography] {
			seen[r.Geography] = true
			geos = append(geos, r.Geography)
		}
	}
	sort.Strings(geos)
	return geos
}

// Geography returns the rows belonging to any of the given geographies
func (t IndustryTable) Geography(ids ...string) IndustryTable {
	return t.filter(func(r IndustryValue) bool { return true }, ids)
}

// TwoDigit returns NAICS sector rows: two-digit codes, hyphenated sector
// ranges such as "31-33" and padded codes such as "11----". The total row is
// kept.
func (t IndustryTable) TwoDigit(geos ...string) IndustryTable {
	return t.filter(func(r IndustryValue) bool {
		return industryLevel(r.Industry) == 2 || isTotalCode(r.Industry)
	}, geos)
}

// ThreeDigit returns NAICS subsector rows, including padded codes such as
// "113///", plus the total row
func (t IndustryTable) ThreeDigit(geos ...string) IndustryTable {
	return t.filter(func(r IndustryValue) bool {
		return industryLevel(r.Industry) == 3 || isTotalCode(r.Industry)
	}, geos)
}

// isTotalCode reports whether code is the all-sector code, either "00" or the
// padded "------"
func isTotalCode(code string) bool {
	return code == DefaultTotalCode || (code != "" && industryLevel(code) == 0)
}

// filter keeps rows matching keep and, when geos is non-empty, one of geos
func (t IndustryTable) filter(keep func(IndustryValue) bool, geos []string) IndustryTable {
	var wanted map[string]bool
	if len(geos) > 0 {
		wanted = make(map[string]bool, len(geos))
		for _, g := range geos {
			wanted[g] = true
		}
	}

	var out []IndustryValue
	for _, r := range t.rows {
		if wanted != nil && !wanted[r.Geography] {
			continue
		}
		if keep(r) {
			out = append(out, r)
		}
	}
	return IndustryTable{rows: out}
}

// Totals sums every industry across all geographies of the table, giving the
// aggregate series of the larger region. Industries keep the order of their
// first appearance. totalKey is designated when present in the table.
func (t IndustryTable) Totals(totalKey string) (Series, error) {
	var order []string
	sums := make(map[string]float64)
	for _, r := range t.rows {
		if _, ok := sums[r.Industry]; !ok {
			order = append(order, r.Industry)
		}
		sums[r.Industry] += r.Value
	}

	entries := make([]Entry, 0, len(order))
	for _, code := range order {
		entries = append(entries, Entry{Industry: code, Value: sums[code]})
	}

	if _, ok := sums[totalKey]; !ok {
		totalKey = ""
	}
	return NewSeries(entries, totalKey)
}

// Series extracts the aligned series of one geography. A geography listing an
// industry twice is rejected, as is one without the total row.
func (t IndustryTable) Series(geo, totalKey string) (Series, error) {
	var entries []Entry
	for _, r := range t.rows {
		if r.Geography == geo {
			entries = append(entries, Entry{Industry: r.Industry, Value: r.Value})
		}
	}
	if len(entries) == 0 {
		return Series{}, apperrors.NewIndexError("table", geo, "no rows for geography")
	}

	s, err := NewSeries(entries, totalKey)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("geography", geo)
		}
		return Series{}, err
	}
	return s, nil
}

// TableLocationQuotient computes the location quotient of every row of table
// against reference. Each geography is anchored on its own total row, the
// reference on its total. Rows are returned in table order; the input table is
// not modified.
func TableLocationQuotient(table IndustryTable, reference Series, totalKey string) ([]GeoQuotient, error) {
	quotients := make(map[string]map[string]float64)
	for _, geo := range table.Geographies() {
		q, err := GeographyQuotients(table, geo, reference, totalKey)
		if err != nil {
			return nil, err
		}
		quotients[geo] = q
	}
	return JoinQuotients(table, quotients), nil
}

// GeographyQuotients computes the location quotients of one geography of table
// against reference, keyed by industry. Errors carry the geography in their
// context.
func GeographyQuotients(table IndustryTable, geo string, reference Series, totalKey string) (map[string]float64, error) {
	small, err := table.Series(geo, totalKey)
	if err != nil {
		return nil, err
	}
	res, err := LocationQuotient(small, reference)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("geography", geo)
		}
		return nil, err
	}
	return res.Values(), nil
}

// JoinQuotients attaches per-geography quotients to the rows of table, in
// table order. Rows without a quotient get the sentinel.
func JoinQuotients(table IndustryTable, quotients map[string]map[string]float64) []GeoQuotient {
	out := make([]GeoQuotient, 0, table.Len())
	for _, r := range table.rows {
		q, ok := quotients[r.Geography][r.Industry]
		if !ok {
			q = math.NaN()
		}
		out = append(out, GeoQuotient{
			Geography: r.Geography,
			Industry:  r.Industry,
			Value:     r.Value,
			Quotient:  q,
		})
	}
	return out
}
