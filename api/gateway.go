package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Gateway owns the HTTP server for the report API.
type Gateway struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewGateway(addr string, handler http.Handler, shutdownTimeout time.Duration) *Gateway {
	return &Gateway{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Serve runs the server on ln until ctx is cancelled, then shuts it down
// gracefully. A serve failure is returned as is.
func (g *Gateway) Serve(ctx context.Context, ln net.Listener) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("API Gateway started", "component", "gateway", "addr", ln.Addr().String())
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), g.shutdownTimeout)
		defer cancel()
		if err := g.server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Gateway shutdown error", "component", "gateway", "error", err)
			return err
		}
		slog.Info("API Gateway stopped", "component", "gateway")
		return nil
	})
	return eg.Wait()
}
