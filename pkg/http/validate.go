package http

// Validate checks that text is a parseable request: request line,
// headers and the supported-header pairing rules all hold. It discards
// the parsed result. Returns nil if valid, or the same error
// ParseRequest would return.
func Validate(text string) error {
	_, err := ParseRequest(text)
	return err
}
