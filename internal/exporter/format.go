package exporter

import (
	"fmt"
	"math"
	"strconv"
)

// formatFloat formats a float64 for CSV output at full precision. Undefined
// ratios become empty cells.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatCell formats one table cell
func formatCell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return formatFloat(c)
	case int:
		return strconv.Itoa(c)
	default:
		return fmt.Sprint(c)
	}
}

// formatRecord formats one table row
func formatRecord(row []interface{}) []string {
	rec := make([]string, len(row))
	for i, v := range row {
		rec[i] = formatCell(v)
	}
	return rec
}
