// Package assembler folds the tokenizer's token sequence into a request
// value. It owns the recognized-header dispatch: the ten supported names
// map to fixed fields, anything else is logged and dropped.
package assembler

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	coretok "github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/shape-serve/internal/tokenizer"
)

// Error kinds reported during assembly.
//
// ErrDanglingHeaderName is malformed input: a header name with no value
// following it. ErrInternalConsistency is not: it means the token stream
// broke the tokenizer's emission contract and indicates a defect in the
// parser itself, so callers must not report it as a client error.
var (
	ErrDanglingHeaderName  = errors.New("dangling header name")
	ErrInternalConsistency = errors.New("internal inconsistency in token stream")
)

// Request is the assembled form of parsed request text. pkg/http copies
// it into the public request type; nothing outside the parse pipeline
// sees this struct.
type Request struct {
	Method  string
	URL     string
	Version string

	Host                    string
	UserAgent               string
	Accept                  string
	AcceptLanguage          string
	AcceptEncoding          string
	Cookie                  string
	Connection              string
	UpgradeInsecureRequests string
	Referer                 string
	CacheControl            string
}

// setHeader assigns value to the field for name. The match is exact and
// case-sensitive; repeated names overwrite. It reports whether name is
// one of the supported ten.
func (r *Request) setHeader(name, value string) bool {
	switch name {
	case "Host":
		r.Host = value
	case "User-Agent":
		r.UserAgent = value
	case "Accept":
		r.Accept = value
	case "Accept-Language":
		r.AcceptLanguage = value
	case "Accept-Encoding":
		r.AcceptEncoding = value
	case "Cookie":
		r.Cookie = value
	case "Connection":
		r.Connection = value
	case "Upgrade-Insecure-Requests":
		r.UpgradeInsecureRequests = value
	case "Referer":
		r.Referer = value
	case "Cache-Control":
		r.CacheControl = value
	default:
		return false
	}
	return true
}

// Assembler builds requests from token sequences. The logger receives a
// debug event per dropped header name; use zerolog.Nop() to discard them.
type Assembler struct {
	log zerolog.Logger
}

// New returns an assembler that reports dropped header names to log.
func New(log zerolog.Logger) *Assembler {
	return &Assembler{log: log}
}

// Assemble consumes tokens in order and returns the finished request at
// EndOfText. The first three tokens must be Method, Url and Version; a
// first-line token anywhere else fails with ErrInternalConsistency.
func (a *Assembler) Assemble(tokens []coretok.Token) (*Request, error) {
	var req Request
	for i := 0; i < len(tokens); i++ {
		tok := &tokens[i]
		switch tok.Kind() {
		case tokenizer.TokenMethod:
			if i != 0 {
				return nil, consistencyError(tokenizer.TokenMethod, i)
			}
			req.Method = internMethod(tok.ValueString())

		case tokenizer.TokenURL:
			if i != 1 {
				return nil, consistencyError(tokenizer.TokenURL, i)
			}
			req.URL = tok.ValueString()

		case tokenizer.TokenVersion:
			if i != 2 {
				return nil, consistencyError(tokenizer.TokenVersion, i)
			}
			req.Version = internVersion(tok.ValueString())

		case tokenizer.TokenHeaderName:
			name := tok.ValueString()
			if i+1 >= len(tokens) || tokens[i+1].Kind() != tokenizer.TokenHeaderValue {
				return nil, fmt.Errorf("http: %w %q", ErrDanglingHeaderName, name)
			}
			value := tokens[i+1].ValueString()
			i++
			if !req.setHeader(name, value) {
				a.log.Debug().Str("header", name).Msg("unexpected header name")
			}

		case tokenizer.TokenHeaderValue:
			return nil, fmt.Errorf("http: %w: header value without preceding name", ErrInternalConsistency)

		case tokenizer.TokenEndOfText:
			if req.Method == "" || req.URL == "" || req.Version == "" {
				return nil, fmt.Errorf("http: %w: end of text before request line was assembled", ErrInternalConsistency)
			}
			return &req, nil

		default:
			return nil, fmt.Errorf("http: %w: unknown token kind %q", ErrInternalConsistency, tok.Kind())
		}
	}
	return nil, fmt.Errorf("http: %w: token stream ended without end-of-text", ErrInternalConsistency)
}

func consistencyError(kind string, pos int) error {
	return fmt.Errorf("http: %w: %s token at position %d", ErrInternalConsistency, kind, pos)
}
