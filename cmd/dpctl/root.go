package main

import (
	"os"
	"strings"

	"dpplayground/internal"
	"dpplayground/internal/config"
	"dpplayground/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags plus the dependencies built from them.
type rootOptions struct {
	calculatorURL string
	logLevel      string

	config    *config.Config
	container *container.Container
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dpctl",
		Short: "Differential privacy playground from the command line",
		Long: `dpctl sends a dataset, a privacy budget (epsilon) and clamping bounds to the
differential privacy calculation service and shows the actual and private
Count, Sum and Mean side by side, with the noise and percent error.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.init,
	}

	rootCmd.PersistentFlags().StringVar(&opts.calculatorURL, "calculator-url", "",
		"Base URL of the calculation service (overrides CALCULATOR_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"ERROR, WARN, INFO, DEBUG or TRACE (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newCalcCmd(opts),
		newTUICmd(opts),
		newHealthCmd(opts),
		newStubCmd(opts),
	)
	return rootCmd
}

// init loads .env and the environment, applies flag overrides and wires the container.
func (o *rootOptions) init(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.calculatorURL != "" {
		cfg.Calculator.BaseURL = o.calculatorURL
	}
	switch {
	case o.logLevel != "":
		cfg.Logging.Level = strings.ToUpper(o.logLevel)
	case os.Getenv("LOG_LEVEL") == "":
		// the terminal is the UI; keep library logs to warnings unless asked
		cfg.Logging.Level = "WARN"
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	o.config = cfg
	o.container = c
	return nil
}
