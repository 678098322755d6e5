package app

import (
	"context"

	"dpplayground/domain/playground"
)

// Report is one finished calculation as scripted callers see it: the request
// that was sent, the raw result, the rendered cards and the local summary.
type Report struct {
	Request playground.CalculationRequest `json:"request"`
	Result  *playground.CalculationResult `json:"result,omitempty"`
	Metrics []playground.MetricText       `json:"metrics,omitempty"`
	Summary playground.DatasetSummary     `json:"summary"`
	Error   string                        `json:"error,omitempty"`
}

// NewReport describes a resolved state and the request that produced it.
func NewReport(req playground.CalculationRequest, state playground.State) Report {
	report := Report{
		Request: req,
		Summary: playground.Summarize(state.Form),
	}
	if state.Phase == playground.PhaseError {
		report.Error = state.Error
		return report
	}
	report.Result = state.Result
	for _, m := range state.Metrics() {
		report.Metrics = append(report.Metrics, m.Text())
	}
	return report
}

// Failed reports whether the calculation ended in the error phase.
func (r Report) Failed() bool {
	return r.Error != ""
}

// Calculate runs one full cycle for a form from a fresh state.
func (s *PlaygroundService) Calculate(ctx context.Context, form playground.FormState) (playground.State, Report) {
	loading, req, err := s.Begin(playground.NewState().WithForm(form))
	if err != nil {
		failed := loading.Fail(err)
		return failed, NewReport(req, failed)
	}
	next := s.Resolve(ctx, loading, req)
	return next, NewReport(req, next)
}
