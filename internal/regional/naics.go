package regional

import "strings"

// sectorTitles maps 2-digit NAICS sectors and CBP sector ranges to titles.
// Used for labelling report rows only; codes are never rewritten.
var sectorTitles = map[string]string{
	"00":    "Total for all sectors",
	"11":    "Agriculture, Forestry, Fishing and Hunting",
	"21":    "Mining, Quarrying, and Oil and Gas Extraction",
	"22":    "Utilities",
	"23":    "Construction",
	"31-33": "Manufacturing",
	"42":    "Wholesale Trade",
	"44-45": "Retail Trade",
	"48-49": "Transportation and Warehousing",
	"51":    "Information",
	"52":    "Finance and Insurance",
	"53":    "Real Estate and Rental and Leasing",
	"54":    "Professional, Scientific, and Technical Services",
	"55":    "Management of Companies and Enterprises",
	"56":    "Administrative and Support and Waste Management and Remediation Services",
	"61":    "Educational Services",
	"62":    "Health Care and Social Assistance",
	"71":    "Arts, Entertainment, and Recreation",
	"72":    "Accommodation and Food Services",
	"81":    "Other Services (except Public Administration)",
	"92":    "Public Administration",
	"99":    "Industries not classified",
}

// rangeSectors resolves single codes that CBP publishes as part of a range
var rangeSectors = map[string]string{
	"31": "31-33", "32": "31-33", "33": "31-33",
	"44": "44-45", "45": "44-45",
	"48": "48-49", "49": "48-49",
}

// SectorTitle returns the NAICS sector title for code, looking at its first
// two digits. It returns "" for unknown sectors.
func SectorTitle(code string) string {
	if title, ok := sectorTitles[code]; ok {
		return title
	}
	if code != "" && industryLevel(code) == 0 {
		return sectorTitles[DefaultTotalCode]
	}
	if len(code) < 2 {
		return ""
	}
	prefix := code[:2]
	if r, ok := rangeSectors[prefix]; ok {
		prefix = r
	}
	return sectorTitles[prefix]
}

// industryLevel returns the number of significant NAICS digits in code. CBP
// pads codes to six characters with '-' or '/', so "11----" is level 2 and
// "113///" level 3. Sector ranges such as "31-33" are level 2. The all-sector
// code "------" is level 0.
func industryLevel(code string) int {
	trimmed := strings.TrimRight(code, "-/")
	if i := strings.IndexByte(trimmed, '-'); i >= 0 {
		return i
	}
	return len(trimmed)
}
