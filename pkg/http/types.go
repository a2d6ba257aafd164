// Package http implements the HTTP/1.1 message layer of shape-serve:
// parsing raw request text into structured requests, and serializing
// responses into exact wire bytes.
//
// The package deliberately supports a fixed slice of HTTP/1.1: a closed
// set of request headers, a closed set of response statuses and headers,
// and no transfer encodings. Everything a response can put on the wire is
// constructed through this package's vocabulary types, so arbitrary
// strings can never reach a status line or header name.
//
// # Thread Safety
//
// Parsing and rendering are safe for concurrent use by multiple
// goroutines. There is no shared mutable state; a Parser only carries its
// diagnostic logger.
//
// # Parsing APIs
//
//   - ParseRequest / Parser.ParseRequest - request text to *Request
//   - Validate - syntax check without keeping the result
//   - ParseNode / RequestNode / ResponseNode - shape-core AST interop
package http

// Request represents a parsed HTTP/1.1 request.
//
// The parser constructs a Request once and never touches it again; treat
// it as read-only. Header fields hold the exact trimmed value from the
// request text, or "" when the header was absent. Only the ten supported
// names below are retained; anything else is dropped during parsing.
type Request struct {
	Method  string // "GET", "POST", etc.
	URL     string // request-target "/index.html"
	Version string // "1.1", with the "HTTP/" prefix stripped

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

// Response represents an HTTP/1.1 response message.
//
// Headers render in insertion order; duplicates are kept and all emitted.
// Nothing is added implicitly: a Response without an explicit
// Content-Length header renders without one.
type Response struct {
	Version string           // "1.1"
	Status  Status           // closed vocabulary, see status.go
	Headers []ResponseHeader // ordered, repeatable
	Body    []byte           // raw body (nil if none)
}

// NewResponse returns a response with no headers.
func NewResponse(version string, status Status, body []byte) *Response {
	return &Response{Version: version, Status: status, Body: body}
}

// AddHeader appends h to the response's header list.
func (r *Response) AddHeader(h ResponseHeader) {
	r.Headers = append(r.Headers, h)
}
