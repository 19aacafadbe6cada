package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsReadHeaderTimeout = 5 * time.Second

// metricsServer exposes a registry at /metrics.
type metricsServer struct {
	srv  *http.Server
	addr string
	done chan error
}

// startMetricsServer listens on addr and serves reg in the background.
func startMetricsServer(addr string, reg *prometheus.Registry) (*metricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	m := &metricsServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		},
		addr: ln.Addr().String(),
		done: make(chan error, 1),
	}
	go func() {
		m.done <- m.srv.Serve(ln)
	}()
	return m, nil
}

// Addr returns the bound address, useful when addr used port 0.
func (m *metricsServer) Addr() string {
	return m.addr
}

// Shutdown stops accepting scrapes and waits for the serve loop to exit.
func (m *metricsServer) Shutdown(ctx context.Context) error {
	shutdownErr := m.srv.Shutdown(ctx)
	if serveErr := <-m.done; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return errors.Join(shutdownErr, serveErr)
	}
	return shutdownErr
}
