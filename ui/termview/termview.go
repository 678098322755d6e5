// Package termview renders playground results for the terminal with lipgloss.
package termview

import (
	"fmt"
	"strings"

	"dpplayground/domain/playground"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorPrimary = lipgloss.Color("#4F46E5") // indigo, DP values and titles
	ColorAccent  = lipgloss.Color("#818CF8")
	ColorBorder  = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#2E9E5B")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#9CA3AF")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	DPValue  lipgloss.Style
	Muted    lipgloss.Style
	Hint     lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Card     lipgloss.Style
	ErrorBox lipgloss.Style
	OK       lipgloss.Style
	Down     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	Label:   lipgloss.NewStyle().Foreground(ColorMuted),
	Value:   lipgloss.NewStyle().Bold(true),
	DPValue: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Hint:    lipgloss.NewStyle().Italic(true).Foreground(ColorMuted),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),

	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(cardWidth),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Foreground(ColorError).
		Padding(0, 1),

	OK:   lipgloss.NewStyle().SetString("●").Foreground(ColorSuccess),
	Down: lipgloss.NewStyle().SetString("●").Foreground(ColorError),
}

const cardWidth = 24

// Card renders one metric as a bordered box.
func Card(m playground.DisplayMetric) string {
	inner := cardWidth - 2
	row := func(label, value string, style lipgloss.Style) string {
		gap := inner - lipgloss.Width(label) - lipgloss.Width(value)
		if gap < 1 {
			gap = 1
		}
		return Styles.Label.Render(label) + strings.Repeat(" ", gap) + style.Render(value)
	}

	lines := []string{
		Styles.Title.Render(m.Title),
		row("Actual", m.ActualText(), Styles.Value),
		row("DP (ε)", m.DPText(), Styles.DPValue),
		row("Noise", m.NoiseText(), Styles.Muted),
		row("Error", m.PercentErrorText(), Styles.Muted),
	}
	return Styles.Card.Render(strings.Join(lines, "\n"))
}

// Cards lays the metrics out side by side, in order.
func Cards(metrics []playground.DisplayMetric) string {
	if len(metrics) == 0 {
		return ""
	}
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = Card(m)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// ErrorBanner renders the single user-visible error message.
func ErrorBanner(message string) string {
	return Styles.ErrorBox.Render(message)
}

// Summary describes the locally parsed dataset against the bounds.
func Summary(s playground.DatasetSummary) string {
	if s.Count == 0 {
		return Styles.Muted.Render("0 values")
	}
	line := Styles.Muted.Render(fmt.Sprintf("%d values, sum %.2f, mean %.2f, range %.2f to %.2f",
		s.Count, s.Sum, s.Mean, s.Min, s.Max))
	if n := s.OutOfBounds(); n > 0 {
		line += "\n" + Styles.Warning.Render(fmt.Sprintf("%d outside the bounds will be clamped (%d below, %d above)",
			n, s.BelowLower, s.AboveUpper))
	}
	return line
}

// Health renders the calculation service status line.
func Health(url string, err error) string {
	if err != nil {
		return fmt.Sprintf("%s %s %s", Styles.Down.String(), url, Styles.Error.Render(err.Error()))
	}
	return fmt.Sprintf("%s %s %s", Styles.OK.String(), url, Styles.Value.Render("online"))
}

// State renders everything a terminal surface shows after a submit.
func State(state playground.State) string {
	var b strings.Builder
	b.WriteString(Summary(playground.Summarize(state.Form)))
	b.WriteString("\n")
	switch state.Phase {
	case playground.PhaseLoading:
		b.WriteString(Styles.Hint.Render("Calculating..."))
		b.WriteString("\n")
	case playground.PhaseError:
		b.WriteString(ErrorBanner(state.Error))
		b.WriteString("\n")
	case playground.PhaseSuccess:
		b.WriteString(Cards(state.Metrics()))
		b.WriteString("\n")
	}
	return b.String()
}
