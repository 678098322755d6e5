package container

import (
	"context"
	"fmt"

	"dpplayground/adapters/api"
	"dpplayground/adapters/excel"
	"dpplayground/app"
	"dpplayground/internal"
	"dpplayground/internal/config"
	"dpplayground/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Observability
	Registry *prometheus.Registry // nil when metrics are disabled
	Metrics  *metrics.PlaygroundMetrics

	// Adapters
	Calculator *api.CalculatorClient
	Importer   *excel.DataReader

	// Application services
	Playground *app.PlaygroundService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level)),
	}

	c.initMetrics()

	calculator, err := api.NewCalculatorClient(api.CalculatorClientConfig{
		BaseURL: cfg.Calculator.BaseURL,
		Timeout: cfg.Calculator.Timeout,
	}, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculator client: %w", err)
	}
	c.Calculator = calculator
	c.Importer = excel.NewDataReader(c.Logger)
	c.Playground = app.NewPlaygroundService(c.Calculator, c.Metrics, c.Logger)

	c.Logger.Named("Container").Debug("initialized (calculator %s, metrics %t)", cfg.Calculator.BaseURL, c.Registry != nil)
	return c, nil
}

func (c *Container) initMetrics() {
	if !c.Config.Metrics.Enabled {
		c.Metrics = metrics.Noop()
		return
	}
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.New(c.Registry)
}

// Gatherer returns the registry for /metrics, or nil when metrics are disabled
func (c *Container) Gatherer() prometheus.Gatherer {
	if c.Registry == nil {
		return nil
	}
	return c.Registry
}

// Shutdown releases held resources; the HTTP client keeps idle connections only.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Calculator.CloseIdleConnections()
	c.Logger.Named("Container").Debug("shutdown complete")
	return nil
}
