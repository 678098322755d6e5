package playground

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the longest decimal literal at the start of a token,
// so "3kg" reads as 3 and "0x10" as 0, the way browsers parse number text.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseDataset splits text on commas, trims each token and keeps the ones that
// parse to a finite float64, in order. Invalid tokens are dropped silently.
func ParseDataset(text string) []float64 {
	values, _ := ParseDatasetCounting(text)
	return values
}

// ParseDatasetCounting is ParseDataset plus the number of tokens it dropped.
// Empty text yields no tokens at all rather than one empty token.
func ParseDatasetCounting(text string) ([]float64, int) {
	values := []float64{}
	if strings.TrimSpace(text) == "" {
		return values, 0
	}

	dropped := 0
	for _, token := range strings.Split(text, ",") {
		v, ok := parseToken(token)
		if !ok {
			dropped++
			continue
		}
		values = append(values, v)
	}
	return values, dropped
}

func parseToken(token string) (float64, bool) {
	v := parseLeadingFloat(token)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseLeadingFloat returns NaN when the token does not start with a number.
func parseLeadingFloat(token string) float64 {
	literal := leadingNumber.FindString(strings.TrimSpace(token))
	if literal == "" {
		return math.NaN()
	}
	// the literal is well-formed, so the only possible error is a range error,
	// for which ParseFloat returns ±Inf and the caller drops the token
	v, _ := strconv.ParseFloat(literal, 64)
	return v
}

// ParseParam converts a numeric form field. Anything that is not a number
// becomes NaN and is passed through unchanged.
func ParseParam(raw string) float64 {
	return parseLeadingFloat(raw)
}

// FormatParam renders a parameter back into a form field; NaN and ±Inf show as empty.
func FormatParam(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
