package server

import (
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-serve/internal/config"
)

// startServer serves on an ephemeral port and returns the address and
// the channel carrying Serve's result.
func startServer(t *testing.T, srv *Server) (string, chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()
	return ln.Addr().String(), served
}

func shutdownServer(t *testing.T, srv *Server, served chan error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

// exchange sends one raw request and returns everything the server
// wrote before closing the connection.
func exchange(t *testing.T, addr, request string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(request))
	require.NoError(t, err)

	reply, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(reply)
}

func TestServer_ServesOverTCP(t *testing.T) {
	srv := testServer(t, newDocRoot(t))
	addr, served := startServer(t, srv)

	reply := exchange(t, addr, "GET /index.html HTTP/1.1\r\nHost: localhost\r\n\r\n")
	require.True(t, strings.HasPrefix(reply, "HTTP/1.1 200 OK\r\n"))
	require.True(t, strings.HasSuffix(reply, "\r\n\r\n<h1>Home</h1>"))

	shutdownServer(t, srv, served)
}

func TestServer_OneRequestPerConnection(t *testing.T) {
	srv := testServer(t, newDocRoot(t))
	addr, served := startServer(t, srv)

	// The connection closes after the first response; a pipelined
	// second request never gets an answer.
	reply := exchange(t, addr,
		"GET /index.html HTTP/1.1\r\n\r\nGET /about.html HTTP/1.1\r\n\r\n")
	require.Equal(t, 1, strings.Count(reply, "HTTP/1.1 200 OK"))
	require.True(t, strings.HasSuffix(reply, "<h1>Home</h1>"))

	shutdownServer(t, srv, served)
}

func TestServer_AnswersBadRequest(t *testing.T) {
	srv := testServer(t, newDocRoot(t))
	addr, served := startServer(t, srv)

	reply := exchange(t, addr, "not a request\r\n\r\n")
	require.Equal(t, "HTTP/1.1 400 BAD REQUEST\r\n\r\nBad request.", reply)

	shutdownServer(t, srv, served)
}

func TestServer_AnswersMethodNotAllowed(t *testing.T) {
	srv := testServer(t, newDocRoot(t))
	addr, served := startServer(t, srv)

	reply := exchange(t, addr, "DELETE / HTTP/1.1\r\nHost: localhost\r\n\r\n")
	require.Equal(t,
		"HTTP/1.1 405 METHOD NOT ALLOWED\r\nAllow: GET, POST, HEAD\r\n\r\nThis is not allowed!",
		reply)

	shutdownServer(t, srv, served)
}

func TestServer_ServeAfterShutdown(t *testing.T) {
	srv := testServer(t, newDocRoot(t))
	require.NoError(t, srv.Shutdown(context.Background()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.Error(t, srv.Serve(ln))
}

// lateListener queues one connection and hands it out only after Close,
// the way Accept can return a connection while Shutdown is running.
type lateListener struct {
	conn   net.Conn
	closed chan struct{}
	once   sync.Once
}

func (l *lateListener) Accept() (net.Conn, error) {
	<-l.closed
	if c := l.conn; c != nil {
		l.conn = nil
		return c, nil
	}
	return nil, net.ErrClosed
}

func (l *lateListener) Close() error {
	l.once.Do(func() { close(l.closed) })
	return nil
}

func (l *lateListener) Addr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}
}

// A connection accepted while Shutdown runs must be closed unserved, not
// slip past the shutdown wait.
func TestServe_RejectsConnDuringShutdown(t *testing.T) {
	srv := testServer(t, newDocRoot(t))

	client, server := net.Pipe()
	defer client.Close()
	ln := &lateListener{conn: server, closed: make(chan struct{})}

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		return srv.ln != nil
	}, time.Second, time.Millisecond)

	require.NoError(t, srv.Shutdown(context.Background()))

	buf := make([]byte, 1)
	n, err := client.Read(buf)
	require.Equal(t, 0, n)
	require.ErrorIs(t, err, io.EOF)

	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestListenAndServe_BindError(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	cfg := config.ServerConfig{
		Host: "127.0.0.1",
		Port: taken.Addr().(*net.TCPAddr).Port,
		Root: t.TempDir(),
	}
	srv := New(cfg, zerolog.Nop())

	err = srv.ListenAndServe()
	require.Error(t, err)
	require.Contains(t, err.Error(), "bind")
}
