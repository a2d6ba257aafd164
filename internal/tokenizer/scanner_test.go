package tokenizer

import (
	"errors"
	"strings"
	"testing"

	coretok "github.com/shapestone/shape-core/pkg/tokenizer"
)

type expectedToken struct {
	kind  string
	value string
}

func assertTokens(t *testing.T, tokens []coretok.Token, expected []expectedToken) {
	t.Helper()
	if len(tokens) != len(expected) {
		t.Fatalf("token count = %d, want %d. tokens = %v", len(tokens), len(expected), formatTokens(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind() != exp.kind {
			t.Errorf("token[%d].Kind() = %q, want %q", i, tokens[i].Kind(), exp.kind)
		}
		if tokens[i].ValueString() != exp.value {
			t.Errorf("token[%d].Value() = %q, want %q", i, tokens[i].ValueString(), exp.value)
		}
	}
}

func TestScan_SimpleRequest(t *testing.T) {
	tokens, err := Scan("GET /foo HTTP/1.1\r\nHost: localhost:8080\r\n\r\n")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertTokens(t, tokens, []expectedToken{
		{TokenMethod, "GET"},
		{TokenURL, "/foo"},
		{TokenVersion, "1.1"},
		{TokenHeaderName, "Host"},
		{TokenHeaderValue, "localhost:8080"},
		{TokenEndOfText, ""},
	})
}

func TestScan_RequestLineOnly(t *testing.T) {
	tokens, err := Scan("GET /foo HTTP/1.1")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertTokens(t, tokens, []expectedToken{
		{TokenMethod, "GET"},
		{TokenURL, "/foo"},
		{TokenVersion, "1.1"},
		{TokenEndOfText, ""},
	})
}

func TestScan_TrimsWholeText(t *testing.T) {
	tokens, err := Scan("\r\n  POST /submit HTTP/1.0\r\nHost: example.com\r\n\r\n  \r\n")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertTokens(t, tokens, []expectedToken{
		{TokenMethod, "POST"},
		{TokenURL, "/submit"},
		{TokenVersion, "1.0"},
		{TokenHeaderName, "Host"},
		{TokenHeaderValue, "example.com"},
		{TokenEndOfText, ""},
	})
}

func TestScan_HeaderTrimming(t *testing.T) {
	tokens, err := Scan("GET / HTTP/1.1\r\n  Host  :   spaced.example.com  \r\n")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertTokens(t, tokens, []expectedToken{
		{TokenMethod, "GET"},
		{TokenURL, "/"},
		{TokenVersion, "1.1"},
		{TokenHeaderName, "Host"},
		{TokenHeaderValue, "spaced.example.com"},
		{TokenEndOfText, ""},
	})
}

func TestScan_ValueMayContainColons(t *testing.T) {
	tokens, err := Scan("GET / HTTP/1.1\r\nReferer: http://localhost:8080/index.html\r\n")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if got := tokens[4].ValueString(); got != "http://localhost:8080/index.html" {
		t.Errorf("header value = %q, want full URL", got)
	}
}

func TestScan_EmptyHeaderValue(t *testing.T) {
	tokens, err := Scan("GET / HTTP/1.1\r\nX-Empty:\r\n")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertTokens(t, tokens[3:], []expectedToken{
		{TokenHeaderName, "X-Empty"},
		{TokenHeaderValue, ""},
		{TokenEndOfText, ""},
	})
}

func TestScan_SkipsInteriorEmptyLines(t *testing.T) {
	tokens, err := Scan("GET / HTTP/1.1\r\n\r\nHost: example.com")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertTokens(t, tokens[3:], []expectedToken{
		{TokenHeaderName, "Host"},
		{TokenHeaderValue, "example.com"},
		{TokenEndOfText, ""},
	})
}

func TestScan_EmptyRequest(t *testing.T) {
	for _, input := range []string{"", "   ", "\r\n\r\n", "\t \r\n"} {
		if _, err := Scan(input); !errors.Is(err, ErrEmptyRequest) {
			t.Errorf("Scan(%q) = %v, want ErrEmptyRequest", input, err)
		}
	}
}

func TestScan_MalformedRequestLine(t *testing.T) {
	tests := []string{
		"GET",
		"GET /foo",
		"GET\r\nHost: example.com",
		"GET  /foo HTTP/1.1", // double space leaves an empty field
	}
	for _, input := range tests {
		if _, err := Scan(input); !errors.Is(err, ErrMalformedRequestLine) {
			t.Errorf("Scan(%q) = %v, want ErrMalformedRequestLine", input, err)
		}
	}
}

func TestScan_MalformedVersion(t *testing.T) {
	tests := []string{
		"GET /foo 1.1",
		"GET /foo HTTPS/1.1",
		"GET /foo http/1.1",
		"GET /foo HTTP/",
	}
	for _, input := range tests {
		if _, err := Scan(input); !errors.Is(err, ErrMalformedVersion) {
			t.Errorf("Scan(%q) = %v, want ErrMalformedVersion", input, err)
		}
	}
}

func TestScan_MalformedHeaderLine(t *testing.T) {
	_, err := Scan("GET / HTTP/1.1\r\nHost: example.com\r\nno colon here")
	if !errors.Is(err, ErrMalformedHeaderLine) {
		t.Fatalf("Scan = %v, want ErrMalformedHeaderLine", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q does not report line 3", err)
	}
}

func TestScan_ExtraRequestLineFieldsIgnored(t *testing.T) {
	tokens, err := Scan("GET /foo HTTP/1.1 surplus")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	assertTokens(t, tokens, []expectedToken{
		{TokenMethod, "GET"},
		{TokenURL, "/foo"},
		{TokenVersion, "1.1"},
		{TokenEndOfText, ""},
	})
}

func formatTokens(tokens []coretok.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
