package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Error kinds reported for malformed request text. Callers match them
// with errors.Is; pkg/http re-exports them as its public taxonomy.
var (
	ErrEmptyRequest         = errors.New("empty request")
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrMalformedVersion     = errors.New("malformed protocol version")
	ErrMalformedHeaderLine  = errors.New("malformed header line")
)

const versionPrefix = "HTTP/"

// Scan splits request text into its token sequence: Method, Url and
// Version from the request line, one HeaderName/HeaderValue pair per
// header line, and a closing EndOfText.
//
// The text is trimmed as a whole and split on CRLF. Empty lines are
// skipped. Scan validates structure only; it does not know which header
// names the assembler accepts.
func Scan(text string) ([]tokenizer.Token, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("http: %w", ErrEmptyRequest)
	}

	lines := strings.Split(trimmed, "\r\n")

	tokens := make([]tokenizer.Token, 0, 2*len(lines)+2)
	tokens, err := scanRequestLine(tokens, lines[0])
	if err != nil {
		return nil, err
	}

	for i, line := range lines[1:] {
		if line == "" {
			continue
		}
		tokens, err = scanHeaderLine(tokens, line, i+2)
		if err != nil {
			return nil, err
		}
	}

	return append(tokens, *tokenizer.NewToken(TokenEndOfText, nil)), nil
}

// scanRequestLine splits "METHOD URL HTTP/VERSION" on single spaces.
// Fields past the third are ignored.
func scanRequestLine(tokens []tokenizer.Token, line string) ([]tokenizer.Token, error) {
	fields := strings.Split(line, " ")
	if len(fields) < 3 {
		return nil, fmt.Errorf("http: parse error at line 1: %w: want 3 fields, have %d", ErrMalformedRequestLine, len(fields))
	}

	method := strings.TrimSpace(fields[0])
	url := strings.TrimSpace(fields[1])
	version := strings.TrimSpace(fields[2])
	if method == "" || url == "" {
		return nil, fmt.Errorf("http: parse error at line 1: %w: empty field", ErrMalformedRequestLine)
	}
	if !strings.HasPrefix(version, versionPrefix) {
		return nil, fmt.Errorf("http: parse error at line 1: %w: %q", ErrMalformedVersion, version)
	}
	version = version[len(versionPrefix):]
	if version == "" {
		return nil, fmt.Errorf("http: parse error at line 1: %w: missing version number", ErrMalformedVersion)
	}

	tokens = append(tokens, *tokenizer.NewToken(TokenMethod, []rune(method)))
	tokens = append(tokens, *tokenizer.NewToken(TokenURL, []rune(url)))
	return append(tokens, *tokenizer.NewToken(TokenVersion, []rune(version))), nil
}

// scanHeaderLine splits a header line at its first colon. The value may
// itself contain colons (URLs, host:port forms). Name and value are
// trimmed; either may be empty.
func scanHeaderLine(tokens []tokenizer.Token, line string, lineNo int) ([]tokenizer.Token, error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return nil, fmt.Errorf("http: parse error at line %d: %w: missing colon", lineNo, ErrMalformedHeaderLine)
	}

	name := strings.TrimSpace(line[:colon])
	value := strings.TrimSpace(line[colon+1:])
	tokens = append(tokens, *tokenizer.NewToken(TokenHeaderName, []rune(name)))
	return append(tokens, *tokenizer.NewToken(TokenHeaderValue, []rune(value))), nil
}
