package jd

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Field normalization is deterministic, pure and idempotent: running a rule
// over its own output is a no-op. Rules never invent values; absent or
// unrecognisable input is passed through or dropped, never fabricated.

const maxFreeTextLen = 500

var (
	fenceRe      = regexp.MustCompile("```(?:json)?")
	rateRangeRe  = regexp.MustCompile(`\$?\s*(\d+(?:\.\d+)?)\s*-\s*\$?\s*(\d+(?:\.\d+)?)`)
	rateNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)
	rateMaxRe    = regexp.MustCompile(`(?i)\bmax\b`)
	perHourRe    = regexp.MustCompile(`(?i)/\s*hr`)
	durationRe   = regexp.MustCompile(`(?i)(\d+)\s*(\+)?\s*(months?|mos?|years?|yrs?)`)
	expRangeRe   = regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*\+?\s*(?:years?|yrs?)`)
	expSingleRe  = regexp.MustCompile(`(?i)(\d+)\s*(\+)?\s*(?:years?|yrs?)`)
	locTokenRe   = regexp.MustCompile(`(?i)\b(remote|hybrid|onsite|on-site)\b`)
	idPrefixRe   = regexp.MustCompile(`(?i)^(?:req|gbams|rgs)[-_\s:#]*`)
	digitsRe     = regexp.MustCompile(`\d+`)
	markerRe     = regexp.MustCompile("[~`*]")
	wsRe         = regexp.MustCompile(`\s+`)
)

// Normalize parses a provider's raw text into a canonical Record. The text
// may be wrapped in code fences or narrative preamble; anything before the
// first '{' and after its matching '}' is discarded. Field rules are applied
// only to present, non-empty values.
func Normalize(raw string) (*Record, error) {
	obj, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(obj), &data); err != nil {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	rec := &Record{}
	if s := stringField(data, "bill_rate"); s != "" {
		rec.Rate = NormalizeRate(s)
	}
	if s := stringField(data, "duration"); s != "" {
		rec.Duration = NormalizeDuration(s)
	}
	if s := stringField(data, "experience"); s != "" {
		rec.Experience = NormalizeExperience(s)
	}
	if s := stringField(data, "requisition_id"); s != "" {
		rec.ExternalID = NormalizeID(s)
	}
	if s := stringField(data, "location"); s != "" {
		rec.Location = NormalizeLocation(s)
	}
	if s := stringField(data, "summary"); s != "" {
		rec.Summary = NormalizeFreeText(s)
	}
	if s := stringField(data, "contact"); s != "" {
		rec.Contact = NormalizeFreeText(s)
	}
	rec.Skills = normalizeSkills(data["skills"])

	return rec, nil
}

// extractObject locates the JSON object inside the raw response. It strips
// code-fence markers and scans from the first '{' to its matching '}',
// tracking brace depth and string literals so nested objects survive.
func extractObject(raw string) (string, error) {
	text := fenceRe.ReplaceAllString(raw, "")

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &MalformedResponseError{Reason: "no JSON object found"}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", &MalformedResponseError{Reason: "unbalanced braces in response"}
}

func stringField(data map[string]any, key string) string {
	s, ok := data[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// NormalizeRate canonicalizes a bill-rate string:
//
//	"70 - 90"              -> "$70-90"
//	"MAX CONFIRMED $75"    -> "$75 MAX"
//	"Max Bill Rate: $80.00" -> "$80 MAX"
//	"$63/hr"               -> "$63/hr"
//
// A MAX qualifier in any position is moved after the number, $n.00 collapses
// to $n, whitespace around a range dash is removed, a bare number gains a $
// prefix, and unrelated trailing tokens are dropped.
func NormalizeRate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	perHour := perHourRe.MatchString(s)

	if m := rateRangeRe.FindStringSubmatch(s); m != nil {
		out := "$" + trimRateNumber(m[1]) + "-" + trimRateNumber(m[2])
		if perHour {
			out += "/hr"
		}
		return out
	}

	if n := rateNumberRe.FindString(s); n != "" {
		out := "$" + trimRateNumber(n)
		if rateMaxRe.MatchString(s) {
			return out + " MAX"
		}
		if perHour {
			out += "/hr"
		}
		return out
	}

	return s
}

// trimRateNumber collapses the $n.00 form to $n.
func trimRateNumber(n string) string {
	return strings.TrimSuffix(n, ".00")
}

// NormalizeDuration canonicalizes contract lengths: month abbreviations
// become "<n> months", year abbreviations become "<n> year", a "+" suffix is
// preserved ("12+ mos" -> "12+ months").
func NormalizeDuration(s string) string {
	s = strings.TrimSpace(s)
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	unit := strings.ToLower(m[3])
	switch {
	case strings.HasPrefix(unit, "m"):
		unit = "months"
	case unit == "yr" || unit == "yrs":
		unit = "year"
	}
	return m[1] + m[2] + " " + unit
}

// NormalizeExperience canonicalizes the "<n>+ yrs" family to "<n>+ years"
// and ranges to "<n>-<m> years".
func NormalizeExperience(s string) string {
	s = strings.TrimSpace(s)
	if m := expRangeRe.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + " years"
	}
	if m := expSingleRe.FindStringSubmatch(s); m != nil {
		return m[1] + m[2] + " years"
	}
	return s
}

// NormalizeLocation title-cases remote/hybrid/onsite tokens and strips stray
// punctuation markers.
func NormalizeLocation(s string) string {
	s = strings.TrimSpace(markerRe.ReplaceAllString(s, ""))
	return locTokenRe.ReplaceAllStringFunc(s, func(t string) string {
		return strings.ToUpper(t[:1]) + strings.ToLower(t[1:])
	})
}

// NormalizeID strips known requisition prefixes and keeps only the first
// contiguous numeric run when the value mixes digits with letters.
func NormalizeID(s string) string {
	s = idPrefixRe.ReplaceAllString(strings.TrimSpace(s), "")
	if digits := digitsRe.FindString(s); digits != "" {
		return digits
	}
	return s
}

// NormalizeFreeText collapses whitespace runs, strips stray punctuation
// markers and truncates overlong values with an ellipsis marker.
func NormalizeFreeText(s string) string {
	s = strings.TrimSpace(wsRe.ReplaceAllString(markerRe.ReplaceAllString(s, ""), " "))
	if r := []rune(s); len(r) > maxFreeTextLen {
		s = string(r[:maxFreeTextLen-3]) + "..."
	}
	return s
}

// normalizeSkills accepts either a list of strings or a single
// comma-delimited string; any other shape is dropped to null. Order is
// preserved and duplicates are kept.
func normalizeSkills(v any) []string {
	var parts []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case string:
		parts = strings.Split(val, ",")
	default:
		return nil
	}

	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	if len(skills) == 0 {
		return nil
	}
	return skills
}
