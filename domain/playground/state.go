package playground

import (
	"dpplayground/internal/errors"
)

// Phase is the lifecycle of one submit.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// State is everything a playground surface renders. It is a value: every
// transition returns a new State and never mutates the receiver.
type State struct {
	Form   FormState
	Phase  Phase
	Error  string
	Result *CalculationResult
}

// NewState is the initial state: defaults, idle, no results.
func NewState() State {
	return State{Form: DefaultForm(), Phase: PhaseIdle}
}

// WithForm replaces the whole form, used when a surface posts all fields at once.
func (s State) WithForm(form FormState) State {
	s.Form = form
	return s
}

func (s State) WithDatasetText(text string) State {
	s.Form.DatasetText = text
	return s
}

func (s State) WithEpsilon(v float64) State {
	s.Form.Epsilon = v
	return s
}

func (s State) WithLowerBound(v float64) State {
	s.Form.LowerBound = v
	return s
}

func (s State) WithUpperBound(v float64) State {
	s.Form.UpperBound = v
	return s
}

// Loading reports whether a request is in flight; surfaces disable submit while true.
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Submit moves to Loading, clears the previous error and results, and builds
// the request to send. It refuses while another request is in flight.
func (s State) Submit() (State, CalculationRequest, error) {
	if s.Loading() {
		return s, CalculationRequest{}, errors.SubmitInFlight()
	}
	s.Phase = PhaseLoading
	s.Error = ""
	s.Result = nil
	return s, NewRequest(s.Form), nil
}

// Succeed stores the result, replacing any previous one.
func (s State) Succeed(result CalculationResult) State {
	s.Phase = PhaseSuccess
	s.Error = ""
	s.Result = &result
	return s
}

// Fail records the failure's message for the banner and leaves results empty.
func (s State) Fail(err error) State {
	s.Phase = PhaseError
	s.Result = nil
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// Metrics projects the current result into display cards, or nil without one.
func (s State) Metrics() []DisplayMetric {
	if s.Result == nil {
		return nil
	}
	return DeriveMetrics(*s.Result)
}
