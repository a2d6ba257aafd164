package assembler

// String interning for the request-line vocabulary.
//
// Method and version literals repeat across requests; returning the
// canonical map entry collapses them to one backing string instead of a
// fresh allocation per request.

var methods = map[string]string{
	"GET": "GET", "HEAD": "HEAD", "POST": "POST",
	"PUT": "PUT", "DELETE": "DELETE", "CONNECT": "CONNECT",
	"OPTIONS": "OPTIONS", "TRACE": "TRACE", "PATCH": "PATCH",
}

var versions = map[string]string{
	"1.0": "1.0", "1.1": "1.1",
	"2": "2", "2.0": "2.0",
}

// internMethod returns the canonical string for known HTTP methods.
func internMethod(s string) string {
	if c, ok := methods[s]; ok {
		return c
	}
	return s
}

// internVersion returns the canonical string for known protocol versions.
func internVersion(s string) string {
	if c, ok := versions[s]; ok {
		return c
	}
	return s
}
