package ports

import (
	"context"

	"dpplayground/domain/playground"
)

// CalculatorPort is the external differential privacy calculation service.
// Implementations send exactly one request per call and never retry.
type CalculatorPort interface {
	// Calculate posts the request and decodes the statistics it answers with
	Calculate(ctx context.Context, req playground.CalculationRequest) (*playground.CalculationResult, error)

	// Health probes the service's health endpoint
	Health(ctx context.Context) error
}
