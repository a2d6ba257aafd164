package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shapestone/shape-serve/pkg/http"
)

// maxRequestBytes bounds how much request text one connection may send.
// Requests here are header-only, so 64 KiB is generous.
const maxRequestBytes = 64 << 10

var errRequestTooLarge = errors.New("server: request exceeds size limit")

// handleConn serves one request and closes the connection.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	log := s.log.With().
		Str("request_id", uuid.New().String()).
		Str("remote", conn.RemoteAddr().String()).
		Logger()

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(start.Add(time.Duration(s.cfg.ReadTimeout) * time.Second))
	}
	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(start.Add(time.Duration(s.cfg.WriteTimeout) * time.Second))
	}

	text, err := readRequestText(conn)
	if err != nil {
		if errors.Is(err, errRequestTooLarge) {
			log.Warn().Msg("request too large")
			s.write(conn, log, badRequest(), start)
			return
		}
		// Nothing usable arrived; there is no one to answer.
		log.Debug().Err(err).Msg("read failed")
		return
	}

	req, perr := s.parser.ParseRequest(text)
	if perr != nil {
		if http.IsClientError(perr) {
			log.Warn().Err(perr).Msg("malformed request")
			s.write(conn, log, badRequest(), start)
		} else {
			log.Error().Err(perr).Msg("parser defect")
			s.write(conn, log, internalError(), start)
		}
		return
	}

	resp := s.route(req)
	log = log.With().
		Str("method", req.Method).
		Str("url", req.URL).
		Logger()
	s.write(conn, log, resp, start)
}

// write renders resp onto conn and emits the request log line.
func (s *Server) write(conn net.Conn, log zerolog.Logger, resp *http.Response, start time.Time) {
	wire := resp.Render()
	if _, err := conn.Write(wire); err != nil {
		log.Warn().Err(err).Msg("write failed")
		return
	}
	log.Info().
		Str("status", resp.Status.String()).
		Int("bytes", len(wire)).
		Dur("duration", time.Since(start)).
		Msg("request served")
}

func badRequest() *http.Response {
	return http.NewResponse(protocolVersion, http.StatusBadRequest, []byte("Bad request."))
}

// internalError answers for parser defects. Defects are never presented
// as client errors.
func internalError() *http.Response {
	return http.NewResponse(protocolVersion, http.StatusInternalServerError, []byte("Internal server error."))
}

// readRequestText reads one request's text: every line through the first
// blank line. The source is capped at the size limit before buffering, so
// an oversized request fails without consuming more than the limit even
// when it never sends a line terminator. A connection that closes before
// the blank line yields whatever was read; parsing decides whether that
// is usable.
func readRequestText(conn io.Reader) (string, error) {
	r := bufio.NewReader(io.LimitReader(conn, maxRequestBytes+1))
	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		if b.Len()+len(line) > maxRequestBytes {
			return "", errRequestTooLarge
		}
		b.WriteString(line)
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
		if line == "\r\n" || line == "\n" {
			return b.String(), nil
		}
	}
}
