package http

import (
	"errors"

	"github.com/shapestone/shape-serve/internal/assembler"
	"github.com/shapestone/shape-serve/internal/tokenizer"
)

// Error kinds returned by request parsing. Every parse failure wraps
// exactly one of these; match with errors.Is.
var (
	ErrEmptyRequest         = tokenizer.ErrEmptyRequest
	ErrMalformedRequestLine = tokenizer.ErrMalformedRequestLine
	ErrMalformedVersion     = tokenizer.ErrMalformedVersion
	ErrMalformedHeaderLine  = tokenizer.ErrMalformedHeaderLine
	ErrDanglingHeaderName   = assembler.ErrDanglingHeaderName
	ErrInternalConsistency  = assembler.ErrInternalConsistency
)

// IsClientError reports whether err was caused by malformed request
// text. It is false for ErrInternalConsistency, which signals a defect
// in the parser itself: servers answer client errors with a 400-class
// status and must never present a defect as one.
func IsClientError(err error) bool {
	switch {
	case errors.Is(err, ErrEmptyRequest),
		errors.Is(err, ErrMalformedRequestLine),
		errors.Is(err, ErrMalformedVersion),
		errors.Is(err, ErrMalformedHeaderLine),
		errors.Is(err, ErrDanglingHeaderName):
		return true
	}
	return false
}
