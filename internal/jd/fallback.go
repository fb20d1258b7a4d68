package jd

import (
	"regexp"
	"strings"
)

// Deterministic pattern-based recovery for critical fields the provider
// missed. Patterns are tried most specific first; the first match wins and
// is passed through the same normalization rule as the provider path.
// FillMissing never overwrites a value already present, and a field with no
// matching pattern simply stays empty.

const maxFallbackFieldLen = 100

type ratePattern struct {
	re     *regexp.Regexp
	format func(m []string) string
}

var fallbackRatePatterns = []ratePattern{
	// "Bill Rate: MAX CONFIRMED $75"
	{
		re:     regexp.MustCompile(`(?i)bill\s*rate[:\s-]*max\s*(?:confirmed\s*)?\$?\s*(\d+(?:\.\d+)?)`),
		format: func(m []string) string { return "$" + m[1] + " MAX" },
	},
	// "Max Bill Rate: $80.00"
	{
		re:     regexp.MustCompile(`(?i)max\s*bill\s*rate[:\s]*\$?\s*(\d+(?:\.\d+)?)`),
		format: func(m []string) string { return "$" + m[1] + " MAX" },
	},
	// "Bill Rate: $70-85/hr", "Bill Rate-$75-$80", "Bill Rate: 60 -80"
	{
		re:     regexp.MustCompile(`(?i)bill\s*rate[:\s-]*\$?\s*(\d+(?:\.\d+)?)\s*-\s*\$?\s*(\d+(?:\.\d+)?)`),
		format: func(m []string) string { return "$" + m[1] + "-" + m[2] },
	},
	// "Bill Rate: $65 MAX"
	{
		re:     regexp.MustCompile(`(?i)bill\s*rate[:\s-]*\$?\s*(\d+(?:\.\d+)?)\s*max`),
		format: func(m []string) string { return "$" + m[1] + " MAX" },
	},
	// "Bill Rate: $70.00", "Bill Rate-$50"
	{
		re:     regexp.MustCompile(`(?i)bill\s*rate[:\s-]*\$?\s*(\d+(?:\.\d+)?)`),
		format: func(m []string) string { return "$" + m[1] },
	},
}

var fallbackDurationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)duration[:\s]*(\d+\s*\+?\s*(?:months?|mos?|years?|yrs?))`),
	regexp.MustCompile(`(?i)contract\s*(?:length|duration)[:\s]*(\d+\s*\+?\s*(?:months?|mos?|years?|yrs?))`),
	regexp.MustCompile(`(?i)(\d+\s*\+?\s*(?:months?|years?))\s*contract`),
	regexp.MustCompile(`(?i)(\d+\s*\+?\s*(?:months?|years?))`),
}

var fallbackIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)gbams\s*req(?:\s*id)?[:\s]*(\d+)`),
	regexp.MustCompile(`(?i)rgs\s*id[:\s]*(\d+)`),
	regexp.MustCompile(`(?i)req\s*id[:\s]*(\d+)`),
	regexp.MustCompile(`(?i)requisition[:\s#]*(\d+)`),
}

var fallbackLocationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)location[:\s]*([^\n]+)`),
	regexp.MustCompile(`(?i)based\s*in[:\s]*([^\n]+)`),
	regexp.MustCompile(`(?i)office[:\s]*([^\n]+)`),
}

var fallbackContactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)msp\s*(?:owner|contact)[:\s]*([^\n]+)`),
	regexp.MustCompile(`(?i)staffing\s*(?:owner|contact)[:\s]*([^\n]+)`),
}

// nextFieldRe truncates a single-line capture at the start of the next
// labelled field, which concatenated postings often run straight into.
var nextFieldRe = regexp.MustCompile(`(?i)(?:bill\s*rate|duration|experience|skills|location|msp|gbams)`)

// FillMissing patches critical fields that are still empty after
// normalization using deterministic patterns over the original posting text.
func FillMissing(rec *Record, jobText string) {
	if rec.Rate == "" {
		rec.Rate = fallbackRate(jobText)
	}
	if rec.ExternalID == "" {
		rec.ExternalID = fallbackID(jobText)
	}
	if rec.Duration == "" {
		rec.Duration = fallbackDuration(jobText)
	}
	if rec.Location == "" {
		rec.Location = fallbackLocation(jobText)
	}
	if rec.Contact == "" {
		rec.Contact = fallbackContact(jobText)
	}
}

func fallbackRate(jobText string) string {
	for _, p := range fallbackRatePatterns {
		if m := p.re.FindStringSubmatch(jobText); m != nil {
			return NormalizeRate(p.format(m))
		}
	}
	return ""
}

func fallbackDuration(jobText string) string {
	for _, re := range fallbackDurationPatterns {
		if m := re.FindStringSubmatch(jobText); m != nil {
			return NormalizeDuration(m[1])
		}
	}
	return ""
}

func fallbackID(jobText string) string {
	for _, re := range fallbackIDPatterns {
		if m := re.FindStringSubmatch(jobText); m != nil {
			return m[1]
		}
	}
	return ""
}

func fallbackLocation(jobText string) string {
	for _, re := range fallbackLocationPatterns {
		if m := re.FindStringSubmatch(jobText); m != nil {
			return NormalizeLocation(truncateAtNextField(m[1]))
		}
	}
	return ""
}

func fallbackContact(jobText string) string {
	for _, re := range fallbackContactPatterns {
		if m := re.FindStringSubmatch(jobText); m != nil {
			return NormalizeFreeText(truncateAtNextField(m[1]))
		}
	}
	return ""
}

func truncateAtNextField(s string) string {
	if loc := nextFieldRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = strings.TrimSpace(s)
	if len(s) > maxFallbackFieldLen {
		s = strings.TrimSpace(s[:maxFallbackFieldLen])
	}
	return s
}
