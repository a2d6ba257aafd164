package http

import (
	"strconv"
	"time"
)

// ResponseHeader is a single response header. The constructor set below
// is the complete list of names a response can carry; the unexported
// fields keep arbitrary names out of the wire format.
type ResponseHeader struct {
	name  string
	value string
}

// HeaderAllow builds "Allow: <methods>".
func HeaderAllow(methods string) ResponseHeader {
	return ResponseHeader{"Allow", methods}
}

// HeaderServer builds "Server: <software>".
func HeaderServer(software string) ResponseHeader {
	return ResponseHeader{"Server", software}
}

// HeaderAcceptRanges builds "Accept-Ranges: <units>".
func HeaderAcceptRanges(units string) ResponseHeader {
	return ResponseHeader{"Accept-Ranges", units}
}

// HeaderContentType builds "Content-Type: <mediaType>".
func HeaderContentType(mediaType string) ResponseHeader {
	return ResponseHeader{"Content-Type", mediaType}
}

// HeaderContentLength builds "Content-Length: <n>". The count is taken
// as given; the renderer never derives it from the body. A length is a
// byte count, so negative values clamp to zero.
func HeaderContentLength(n int) ResponseHeader {
	if n < 0 {
		n = 0
	}
	return ResponseHeader{"Content-Length", strconv.Itoa(n)}
}

// HeaderDate builds "Date: <date>". Use FormatDate for the value.
func HeaderDate(date string) ResponseHeader {
	return ResponseHeader{"Date", date}
}

// Name returns the header's field name.
func (h ResponseHeader) Name() string { return h.name }

// Value returns the header's field value.
func (h ResponseHeader) Value() string { return h.value }

// String returns the wire form "Name: value" without the line ending.
func (h ResponseHeader) String() string {
	return h.name + ": " + h.value
}

// responseHeaderFromWire rebuilds a header from its wire name. Only the
// six supported names resolve; the AST bridge relies on this to reject
// foreign headers.
func responseHeaderFromWire(name, value string) (ResponseHeader, bool) {
	switch name {
	case "Allow", "Server", "Accept-Ranges", "Content-Type", "Content-Length", "Date":
		return ResponseHeader{name, value}, true
	}
	return ResponseHeader{}, false
}

// dateLayout is the fixed-zone IMF form used by the Date header. The
// trailing GMT is literal, which is why the time must be in UTC.
const dateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatDate renders t for the Date header, e.g.
// "Tue, 25 Aug 2026 09:15:00 GMT".
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
