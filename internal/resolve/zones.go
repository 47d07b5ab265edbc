package resolve

import (
	"strings"
	"time"
)

// zoneAbbrevs maps the abbreviations people actually type to fixed offsets.
// Abbreviations are ambiguous in general (IST, CST); these pick the most
// common reading.
var zoneAbbrevs = map[string]int{
	"WET":  0,
	"WEST": 1 * 3600,
	"BST":  1 * 3600,
	"CET":  1 * 3600,
	"CEST": 2 * 3600,
	"EET":  2 * 3600,
	"EEST": 3 * 3600,
	"MSK":  3 * 3600,
	"IST":  5*3600 + 1800,
	"SGT":  8 * 3600,
	"HKT":  8 * 3600,
	"JST":  9 * 3600,
	"KST":  9 * 3600,
	"AEST": 10 * 3600,
	"AEDT": 11 * 3600,
	"NZST": 12 * 3600,
	"NZDT": 13 * 3600,
	"HST":  -10 * 3600,
	"AKST": -9 * 3600,
	"AKDT": -8 * 3600,
	"PST":  -8 * 3600,
	"PDT":  -7 * 3600,
	"MST":  -7 * 3600,
	"MDT":  -6 * 3600,
	"CST":  -6 * 3600,
	"CDT":  -5 * 3600,
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
}

// lookupZone resolves an abbreviation ("pdt") or IANA name
// ("America/New_York") to a location.
func lookupZone(token string) (*time.Location, bool) {
	upper := strings.ToUpper(token)
	if upper == "UTC" || upper == "UT" || upper == "GMT" || upper == "Z" {
		return time.UTC, true
	}
	if offset, ok := zoneAbbrevs[upper]; ok {
		return time.FixedZone(upper, offset), true
	}
	if !strings.Contains(token, "/") {
		return nil, false
	}
	loc, err := time.LoadLocation(token)
	if err != nil {
		return nil, false
	}
	return loc, true
}

func fixedOffset(sign byte, hh, mm int) *time.Location {
	secs := hh*3600 + mm*60
	if sign == '-' {
		secs = -secs
	}
	if secs == 0 {
		return time.UTC
	}
	return time.FixedZone("", secs)
}
