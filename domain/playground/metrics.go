package playground

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Metric titles, in display order.
const (
	TitleCount = "Count"
	TitleSum   = "Sum"
	TitleMean  = "Mean"
)

// DisplayMetric pairs an actual statistic with its DP counterpart.
type DisplayMetric struct {
	Title        string  `json:"title"`
	Actual       float64 `json:"actual"`
	DP           float64 `json:"dp"`
	Noise        float64 `json:"noise"`
	PercentError float64 `json:"percent_error"`
}

// DeriveMetric computes the absolute noise and the percent error relative to
// the actual value. A zero actual value reports 0% rather than dividing by zero.
func DeriveMetric(title string, actual, dp float64) DisplayMetric {
	noise := math.Abs(actual - dp)
	percent := 0.0
	if actual != 0 {
		percent = noise / math.Abs(actual) * 100
	}
	return DisplayMetric{
		Title:        title,
		Actual:       actual,
		DP:           dp,
		Noise:        noise,
		PercentError: percent,
	}
}

// DeriveMetrics returns the Count, Sum and Mean cards for a result.
func DeriveMetrics(result CalculationResult) []DisplayMetric {
	return []DisplayMetric{
		DeriveMetric(TitleCount, result.ActualCount, result.Count),
		DeriveMetric(TitleSum, result.ActualSum, result.Sum),
		DeriveMetric(TitleMean, result.ActualMean, result.Mean),
	}
}

// Display-only renderings. They never feed back into stored values.

func (m DisplayMetric) ActualText() string { return fixed(m.Actual, 2) }

func (m DisplayMetric) DPText() string { return fixed(m.DP, 2) }

func (m DisplayMetric) NoiseText() string { return fixed(m.Noise, 4) }

func (m DisplayMetric) PercentErrorText() string { return fixed(m.PercentError, 2) + "%" }

// fixed formats v with digits decimals. Exact ties on the binary value round
// away from zero; everything else rounds to nearest, so 1.005 stays "1.00".
func fixed(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'f', digits, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) || !exactTie(v, digits) {
		return s
	}

	// the exact expansion of a float64 has at most 1074 fractional digits
	exact := new(big.Float).SetFloat64(math.Abs(v)).Text('f', 1100)
	dot := strings.IndexByte(exact, '.')
	n, _ := new(big.Int).SetString(exact[:dot]+exact[dot+1:dot+1+digits], 10)
	text := n.Add(n, big.NewInt(1)).String()
	if digits > 0 {
		if len(text) <= digits {
			text = strings.Repeat("0", digits-len(text)+1) + text
		}
		text = text[:len(text)-digits] + "." + text[len(text)-digits:]
	}
	if v < 0 {
		text = "-" + text
	}
	return text
}

// exactTie reports whether v lies exactly halfway between two values with digits decimals.
func exactTie(v float64, digits int) bool {
	exact := new(big.Float).SetFloat64(math.Abs(v)).Text('f', 1100)
	tail := exact[strings.IndexByte(exact, '.')+1+digits:]
	return tail[0] == '5' && strings.TrimRight(tail[1:], "0") == ""
}

// MetricText is a card as rendered text, for surfaces that print rather than draw.
type MetricText struct {
	Title        string `json:"title"`
	Actual       string `json:"actual"`
	DP           string `json:"dp"`
	Noise        string `json:"noise"`
	PercentError string `json:"percent_error"`
}

// Text renders every field with its display precision.
func (m DisplayMetric) Text() MetricText {
	return MetricText{
		Title:        m.Title,
		Actual:       m.ActualText(),
		DP:           m.DPText(),
		Noise:        m.NoiseText(),
		PercentError: m.PercentErrorText(),
	}
}
