// Package regional implements regional-economics indicators over County Business
// Patterns (CBP) style industry data.
//
// Data arrives as employment or establishment counts indexed by NAICS industry
// code and geography. Each geography carries one all-industries row (code "00"
// in CBP extracts) that anchors every share computed here.
//
// # Indicators
//
//  1. Location quotient: relative concentration of an industry in a small
//     geography compared with a larger reference geography.
//  2. Shift-share: decomposition of local industry growth into reference-wide
//     growth, industry mix and local competitiveness.
//  3. Specialization coefficient: half the sum of absolute share differences
//     between the two industry mixes, in [0, 1].
//
// # Data model
//
//   - IndustryTable: rows of (geography, industry, value); filtered and
//     aggregated without mutation.
//   - Series: ordered industry -> value mapping for one geography, with an
//     explicit total key instead of a string convention.
//
// # Errors and sentinels
//
// Precondition violations fail fast with an *errors.AppError of type TYPE
// (not a usable series) or INDEX (key sets, key order or total keys do not
// line up). A zero denominator never fails: the affected cell is NaN, see
// IsSentinel, and the rest of the table is still computed.
//
// All functions are pure and safe for concurrent use on shared inputs.
//
// # Usage
//
//	county, _ := regional.SeriesFromMap(map[string]float64{"00": 100, "11": 40, "22": 60}, regional.DefaultTotalCode)
//	state, _ := regional.SeriesFromMap(map[string]float64{"00": 1000, "11": 300, "22": 700}, regional.DefaultTotalCode)
//	lq, err := regional.LocationQuotient(county, state)
package regional
