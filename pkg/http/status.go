package http

// Status is a response status from the closed vocabulary below. The
// status line renders the literal text verbatim, so only the declared
// values can ever appear on the wire; extending the vocabulary means
// adding a value here with its fixed text, never passing a string in.
//
// The unexported field keeps other packages from minting their own.
type Status struct {
	text string
}

var (
	StatusOK                  = Status{"200 OK"}
	StatusBadRequest          = Status{"400 BAD REQUEST"}
	StatusNotFound            = Status{"404 NOT FOUND"}
	StatusMethodNotAllowed    = Status{"405 METHOD NOT ALLOWED"}
	StatusInternalServerError = Status{"500 INTERNAL SERVER ERROR"}
)

// String returns the wire text, e.g. "404 NOT FOUND".
func (s Status) String() string {
	return s.text
}

// statusFromText resolves wire text back to a vocabulary value. Used by
// the AST bridge; unknown text reports false rather than minting a status.
func statusFromText(text string) (Status, bool) {
	for _, s := range []Status{
		StatusOK,
		StatusBadRequest,
		StatusNotFound,
		StatusMethodNotAllowed,
		StatusInternalServerError,
	} {
		if s.text == text {
			return s, true
		}
	}
	return Status{}, false
}
