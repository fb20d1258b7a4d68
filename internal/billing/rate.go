// Package billing derives numeric rate bounds from already-normalized
// bill-rate strings. It is pure post-processing: it never re-parses the
// original posting text and never calls a provider.
package billing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rangeRe  = regexp.MustCompile(`\$?\s*(\d+(?:\.\d+)?)\s*-\s*\$?\s*(\d+(?:\.\d+)?)`)
	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Range holds optional numeric rate bounds. A nil bound means unknown.
type Range struct {
	Min *float64
	Max *float64
}

// Parse extracts min/max bounds from a normalized rate string.
//
//	"$70-$85"        -> {Min: 70, Max: 85}
//	"$80 MAX"        -> {Min: nil, Max: 80}
//	"$75"            -> {Min: nil, Max: 75}
//	"" / no numbers  -> {Min: nil, Max: nil}
//
// A single value is always an upper bound, never inferred as both min and
// max. This mirrors the documented extraction contract; do not "fix" it
// without product sign-off.
func Parse(rate string) Range {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return Range{}
	}

	if m := rangeRe.FindStringSubmatch(rate); m != nil {
		min, err1 := strconv.ParseFloat(m[1], 64)
		max, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return Range{Min: &min, Max: &max}
		}
	}

	if n := numberRe.FindString(rate); n != "" {
		if v, err := strconv.ParseFloat(n, 64); err == nil {
			return Range{Max: &v}
		}
	}

	return Range{}
}
