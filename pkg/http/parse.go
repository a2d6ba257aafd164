package http

import (
	"github.com/rs/zerolog"

	"github.com/shapestone/shape-serve/internal/assembler"
	"github.com/shapestone/shape-serve/internal/tokenizer"
)

// Parser turns raw request text into Requests. It carries only the
// logger that receives a debug event per dropped header name, so a
// single Parser may be shared by any number of goroutines.
type Parser struct {
	log zerolog.Logger
}

// NewParser returns a parser that discards header diagnostics.
func NewParser() *Parser {
	return &Parser{log: zerolog.Nop()}
}

// NewParserWithLogger returns a parser that reports dropped header
// names to log at debug level.
func NewParserWithLogger(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// ParseRequest parses one complete request text. The text must contain
// the request line and all header lines; reading it off a connection is
// the caller's concern. On failure the error wraps one of the Err kinds
// in errors.go.
func (p *Parser) ParseRequest(text string) (*Request, error) {
	tokens, err := tokenizer.Scan(text)
	if err != nil {
		return nil, err
	}
	built, err := assembler.New(p.log).Assemble(tokens)
	if err != nil {
		return nil, err
	}
	return newRequest(built), nil
}

var defaultParser = NewParser()

// ParseRequest parses text with header diagnostics discarded.
func ParseRequest(text string) (*Request, error) {
	return defaultParser.ParseRequest(text)
}

// newRequest copies the assembled form into the public type.
func newRequest(in *assembler.Request) *Request {
	return &Request{
		Method:                  in.Method,
		URL:                     in.URL,
		Version:                 in.Version,
		Host:                    in.Host,
		UserAgent:               in.UserAgent,
		Accept:                  in.Accept,
		AcceptLanguage:          in.AcceptLanguage,
		AcceptEncoding:          in.AcceptEncoding,
		Cookie:                  in.Cookie,
		Connection:              in.Connection,
		UpgradeInsecureRequests: in.UpgradeInsecureRequests,
		Referer:                 in.Referer,
		CacheControl:            in.CacheControl,
	}
}
