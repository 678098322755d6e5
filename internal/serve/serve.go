// Package serve runs HTTP servers until their context is cancelled.
package serve

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"dpplayground/internal"

	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests may take to drain.
const ShutdownTimeout = 10 * time.Second

// Server pairs a name for logs with an http.Server.
type Server struct {
	Name string
	HTTP *http.Server
}

// Run serves every server until ctx is cancelled or one of them fails, then
// shuts all of them down. A clean shutdown returns nil.
func Run(ctx context.Context, logger *internal.Logger, servers ...Server) error {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.Named("Serve")

	listeners := make([]net.Listener, 0, len(servers))
	for _, s := range servers {
		ln, err := net.Listen("tcp", s.HTTP.Addr)
		if err != nil {
			for _, open := range listeners {
				_ = open.Close()
			}
			return err
		}
		listeners = append(listeners, ln)
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i, s := range servers {
		s, ln := s, listeners[i]
		logger.Info("%s listening on http://%s", s.Name, ln.Addr())

		g.Go(func() error {
			if err := s.HTTP.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
			defer cancel()
			logger.Info("shutting down %s", s.Name)
			return s.HTTP.Shutdown(shutdownCtx)
		})
	}
	return g.Wait()
}
