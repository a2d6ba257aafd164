// Package tokenizer splits raw HTTP/1.1 request text into the flat token
// sequence consumed by the assembler. Tokens are Shape tokenizer tokens.
package tokenizer

// Token kind constants for request text.
// A well-formed scan always emits Method, Url, Version first, then
// HeaderName/HeaderValue pairs in source order, then one EndOfText.
const (
	// Request-line tokens
	TokenMethod  = "Method"  // GET, POST, HEAD, etc.
	TokenURL     = "Url"     // request-target /index.html
	TokenVersion = "Version" // 1.1, with the HTTP/ prefix already stripped

	// Header tokens, always emitted as a name/value pair
	TokenHeaderName  = "HeaderName"  // field-name before the first colon
	TokenHeaderValue = "HeaderValue" // field-value after the first colon

	// Special
	TokenEndOfText = "EndOfText" // end of request text
)
