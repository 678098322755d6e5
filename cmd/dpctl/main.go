// Command dpctl drives the differential privacy playground from the terminal:
// one-shot calculations, an interactive form, health checks and a local stub
// of the calculation service.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var exit *exitError
		if !stderrors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// exitError fails the command after its output already explained why.
type exitError struct {
	reason string
}

func (e *exitError) Error() string {
	return e.reason
}
