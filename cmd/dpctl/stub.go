package main

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"dpplayground/adapters/stubservice"
	"dpplayground/domain/playground"
	"dpplayground/internal/serve"

	"github.com/spf13/cobra"
)

func newStubCmd(opts *rootOptions) *cobra.Command {
	var port, fixture string

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a local stand-in for the calculation service",
		Long: `Serves /, /health and /calculate like the calculation service. It adds no
noise: DP values equal the actual statistics, or a fixed result loaded with
--fixture. Use it to develop the playground without the real service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = opts.config.Stub.Port
			}
			if !cmd.Flags().Changed("fixture") {
				fixture = opts.config.Stub.FixturePath
			}

			var result *playground.CalculationResult
			if fixture != "" {
				loaded, err := stubservice.LoadFixture(fixture)
				if err != nil {
					return err
				}
				result = loaded
			}

			stub := stubservice.NewServer(result, opts.container.Logger)
			fmt.Fprintf(cmd.OutOrStdout(), "stub calculation service on http://localhost:%s (ctrl+c to stop)\n", port)
			return serve.Run(cmd.Context(), opts.container.Logger, serve.Server{
				Name: "stub calculation service",
				HTTP: &http.Server{
					Addr:              net.JoinHostPort("", port),
					Handler:           stub.Handler(),
					ReadHeaderTimeout: 10 * time.Second,
				},
			})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default STUB_PORT or 8000)")
	cmd.Flags().StringVar(&fixture, "fixture", "", "JSON file with a fixed calculation result (default STUB_FIXTURE)")
	return cmd
}
