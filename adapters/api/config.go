package api

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Paths exposed by the calculation service.
const (
	CalculatePath = "/calculate"
	HealthPath    = "/health"
)

// CalculatorClientConfig holds configuration for the calculation service client
type CalculatorClientConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"` // zero means no client-side timeout
}

// DefaultCalculatorClientConfig points at the service on its usual local port
func DefaultCalculatorClientConfig() CalculatorClientConfig {
	return CalculatorClientConfig{
		BaseURL: "http://localhost:8000",
	}
}

// Validate checks if the configuration is valid
func (c CalculatorClientConfig) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return &ValidationError{Field: "BaseURL", Message: "is required"}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Field: "BaseURL", Message: "must be an absolute URL"}
	}

	if c.Timeout < 0 {
		return &ValidationError{Field: "Timeout", Message: "cannot be negative"}
	}

	return nil
}

// Endpoint joins the base URL with a service path
func (c CalculatorClientConfig) Endpoint(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}
