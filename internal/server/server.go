// Package server answers HTTP/1.1 requests over plain TCP: one request
// per connection, parsed and rendered by pkg/http, resolved against a
// static document root.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shapestone/shape-serve/internal/config"
	"github.com/shapestone/shape-serve/pkg/http"
)

const (
	// protocolVersion is the version every response carries.
	protocolVersion = "1.1"

	// allowedMethods is the Allow header value for 405 responses. The
	// switch in methodAllowed must list the same set.
	allowedMethods = "GET, POST, HEAD"

	// serverSoftware is the Server header value.
	serverSoftware = "shape-serve"
)

// Server accepts TCP connections and serves one response per connection.
type Server struct {
	cfg    config.ServerConfig
	log    zerolog.Logger
	parser *http.Parser
	now    func() time.Time // Date header clock, swappable in tests

	mu     sync.Mutex
	ln     net.Listener
	closed bool
	conns  sync.WaitGroup
}

// New returns a server for cfg. Parser diagnostics and request logs go
// to log.
func New(cfg config.ServerConfig, log zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		log:    log,
		parser: http.NewParserWithLogger(log),
		now:    time.Now,
	}
}

// ListenAndServe binds the configured address and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("server: bind %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln, one goroutine per connection. It
// returns nil after Shutdown closes the listener.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return fmt.Errorf("server: already shut down")
	}
	s.ln = ln
	s.mu.Unlock()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("root", s.cfg.Root).
		Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			return fmt.Errorf("server: accept: %w", err)
		}
		// Admit under mu: a conn is either in the WaitGroup before
		// Shutdown starts waiting, or rejected here.
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.conns.Add(1)
		s.mu.Unlock()
		go func() {
			defer s.conns.Done()
			s.handleConn(conn)
		}()
	}
}

// Shutdown closes the listener and waits for in-flight connections until
// ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	ln := s.ln
	s.mu.Unlock()
	if ln != nil {
		ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
