package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"dpplayground/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Calculator CalculatorConfig
	Server     ServerConfig
	Stub       StubConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
}

// CalculatorConfig describes the external DP calculation service
type CalculatorConfig struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gte=0"` // zero leaves the HTTP client default (no timeout)
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"oneof=debug release test"`
}

// StubConfig holds settings for the local stub calculation service
type StubConfig struct {
	Port        string `validate:"required,numeric"`
	FixturePath string
}

// LoggingConfig holds log verbosity
type LoggingConfig struct {
	Level string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool
}

const (
	DefaultCalculatorURL = "http://localhost:8000"
	DefaultServerPort    = "3000"
	DefaultStubPort      = "8000"
)

var validate = validator.New()

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Calculator: loadCalculatorConfig(),
		Server:     loadServerConfig(),
		Stub:       loadStubConfig(),
		Logging: LoggingConfig{
			Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
		},
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Calculator: CalculatorConfig{BaseURL: DefaultCalculatorURL},
		Server:     ServerConfig{Port: DefaultServerPort, GinMode: "release"},
		Stub:       StubConfig{Port: DefaultStubPort},
		Logging:    LoggingConfig{Level: "INFO"},
		Metrics:    MetricsConfig{Enabled: true},
	}
}

// Validate checks struct tags and reports the first failing field
func Validate(config *Config) error {
	if err := validate.Struct(config); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.ConfigInvalid(fe.Namespace() + " failed '" + fe.Tag() + "' validation")
		}
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

func loadCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		BaseURL: strings.TrimRight(getEnvOrDefault("CALCULATOR_URL", DefaultCalculatorURL), "/"),
		Timeout: getEnvDurationOrDefault("CALCULATOR_TIMEOUT", 0),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", DefaultServerPort),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadStubConfig() StubConfig {
	return StubConfig{
		Port:        getEnvOrDefault("STUB_PORT", DefaultStubPort),
		FixturePath: getEnvOrDefault("STUB_FIXTURE", ""),
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
