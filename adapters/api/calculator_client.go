package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dpplayground/domain/playground"
	"dpplayground/internal"
	"dpplayground/internal/errors"
	"dpplayground/ports"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-call id so service logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// CalculatorClient talks to the external differential privacy service over HTTP.
type CalculatorClient struct {
	config     CalculatorClientConfig
	httpClient *http.Client
	logger     *internal.Logger
}

var _ ports.CalculatorPort = (*CalculatorClient)(nil)

// NewCalculatorClient creates a client for the configured service
func NewCalculatorClient(config CalculatorClientConfig, logger *internal.Logger) (*CalculatorClient, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CalculatorClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("Calculator"),
	}, nil
}

// Calculate sends one POST and decodes the answer. Non-2xx responses become
// errors.FetchFailed; there is no retry.
func (c *CalculatorClient) Calculate(ctx context.Context, calcReq playground.CalculationRequest) (*playground.CalculationResult, error) {
	body, err := json.Marshal(calcReq)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode calculation request")
	}

	requestID := uuid.NewString()
	req, err := c.buildRequest(ctx, http.MethodPost, c.config.Endpoint(CalculatePath), bytes.NewReader(body), requestID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("POST %s (%d values, request %s)", req.URL, len(calcReq.Data), requestID)

	reqStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request %s failed: %v", requestID, err)
		return nil, errors.ExternalServiceError("calculation", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError("calculation", fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("request %s returned status %d: %s", requestID, resp.StatusCode, truncate(respBody, 256))
		return nil, errors.FetchFailed()
	}

	var result playground.CalculationResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.logger.Warn("request %s returned undecodable body: %v", requestID, err)
		return nil, errors.DecodeFailed(err)
	}

	c.logger.Debug("request %s completed in %s", requestID, time.Since(reqStart))
	return &result, nil
}

// Health reports whether GET /health answers 2xx
func (c *CalculatorClient) Health(ctx context.Context) error {
	req, err := c.buildRequest(ctx, http.MethodGet, c.config.Endpoint(HealthPath), nil, uuid.NewString())
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.ExternalServiceError("calculation", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.ExternalServiceError("calculation", fmt.Errorf("health returned status %d", resp.StatusCode))
	}
	return nil
}

func (c *CalculatorClient) buildRequest(ctx context.Context, method, url string, body io.Reader, requestID string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	return req, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// CloseIdleConnections drops pooled keep-alive connections
func (c *CalculatorClient) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
