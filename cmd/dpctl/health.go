package main

import (
	"context"
	"fmt"
	"time"

	"dpplayground/ui/termview"

	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the calculation service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			err := opts.container.Playground.Health(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), termview.Health(opts.config.Calculator.BaseURL, err))
			if err != nil {
				return &exitError{reason: err.Error()}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long to wait for the service")
	return cmd
}
