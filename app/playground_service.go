package app

import (
	"context"
	"time"

	"dpplayground/domain/playground"
	"dpplayground/internal"
	"dpplayground/internal/errors"
	"dpplayground/internal/metrics"
	"dpplayground/ports"
)

// PlaygroundService drives one submit cycle: reduce to Loading, call the
// calculation service, reduce to Success or Error.
type PlaygroundService struct {
	calculator ports.CalculatorPort
	metrics    *metrics.PlaygroundMetrics
	logger     *internal.Logger
}

// NewPlaygroundService creates a new playground service
func NewPlaygroundService(calculator ports.CalculatorPort, m *metrics.PlaygroundMetrics, logger *internal.Logger) *PlaygroundService {
	if m == nil {
		m = metrics.Noop()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PlaygroundService{
		calculator: calculator,
		metrics:    m,
		logger:     logger.Named("Playground"),
	}
}

// Begin moves the state to Loading and returns the request to send. While a
// request is already in flight the state comes back unchanged with an error.
func (s *PlaygroundService) Begin(state playground.State) (playground.State, playground.CalculationRequest, error) {
	next, req, err := state.Submit()
	if err != nil {
		s.metrics.ObserveCalculation(metrics.OutcomeRejected, errors.GetCode(err), 0)
		s.logger.Debug("submit ignored: %v", err)
		return state, req, err
	}

	_, dropped := playground.ParseDatasetCounting(state.Form.DatasetText)
	s.metrics.ObserveDropped(dropped)
	if dropped > 0 {
		s.logger.Debug("dropped %d dataset tokens that did not parse", dropped)
	}
	s.logger.Trace("dataset: %v", req.Data)
	return next, req, nil
}

// Resolve performs the single outbound call for a Loading state.
func (s *PlaygroundService) Resolve(ctx context.Context, loading playground.State, req playground.CalculationRequest) playground.State {
	start := time.Now()
	result, err := s.calculator.Calculate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveCalculation(metrics.OutcomeFailure, errors.GetCode(err), elapsed)
		s.logger.Warn("calculation failed after %s: %v", elapsed, err)
		return loading.Fail(err)
	}

	s.metrics.ObserveCalculation(metrics.OutcomeSuccess, "", elapsed)
	s.logger.Info("calculation succeeded in %s (%d values, epsilon %g)", elapsed, len(req.Data), req.Epsilon)
	return loading.Succeed(*result)
}

// Submit runs Begin and Resolve back to back, for surfaces that block on the call.
func (s *PlaygroundService) Submit(ctx context.Context, state playground.State) playground.State {
	loading, req, err := s.Begin(state)
	if err != nil {
		return loading
	}
	return s.Resolve(ctx, loading, req)
}

// Health probes the calculation service.
func (s *PlaygroundService) Health(ctx context.Context) error {
	return s.calculator.Health(ctx)
}
