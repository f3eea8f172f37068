package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"MerchantReports/internal/serviceiface"
)

type GatewayService struct {
	config  map[string]interface{}
	handler http.Handler
	addr    string

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	done     chan error
}

// NewGatewayService builds the gateway from its services.yaml block. port
// in the block is used only when defaultPort is empty.
func NewGatewayService(cfg map[string]interface{}, handler http.Handler, defaultPort string) *GatewayService {
	port := defaultPort
	if port == "" {
		port = serviceiface.String(cfg, "port", "8080")
	}
	host := serviceiface.String(cfg, "host", "")
	return &GatewayService{
		config:  cfg,
		handler: handler,
		addr:    net.JoinHostPort(host, port),
	}
}

func (s *GatewayService) Name() string {
	return "gateway"
}

// Start binds the listener synchronously so a busy port fails startup.
func (s *GatewayService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("gateway already started on %s", s.listener.Addr())
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	timeout := serviceiface.Duration(s.config, "shutdown_timeout", 30*time.Second)
	gw := NewGateway(s.addr, s.handler, timeout)

	ctx, cancel := context.WithCancel(context.Background())
	s.listener = ln
	s.cancel = cancel
	s.done = make(chan error, 1)
	go func() {
		err := gw.Serve(ctx, ln)
		if err != nil {
			slog.Error("Gateway server failed", "component", "gateway", "error", err)
		}
		s.done <- err
	}()
	return nil
}

// Addr is the bound address once started.
func (s *GatewayService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *GatewayService) Stop() error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	return <-done
}
