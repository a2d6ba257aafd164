package http

import "sync"

// bufPool pools []byte slices for the render fast path.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 2048)
		return &b
	},
}

// Render returns the wire encoding of the response:
//
//	HTTP/<version> <status>\r\n
//	<header>\r\n per header, in insertion order
//	\r\n
//	body bytes, verbatim
//
// Render reads the response and nothing else; calling it repeatedly, or
// from several goroutines, yields identical bytes every time.
func (r *Response) Render() []byte {
	bp := bufPool.Get().(*[]byte)
	buf := (*bp)[:0]

	buf = appendStatusLine(buf, r.Version, r.Status)
	for _, h := range r.Headers {
		buf = appendHeader(buf, h)
	}
	buf = appendCRLF(buf)
	buf = append(buf, r.Body...)

	result := make([]byte, len(buf))
	copy(result, buf)
	*bp = buf
	bufPool.Put(bp)
	return result
}

// appendCRLF appends \r\n to buf.
func appendCRLF(buf []byte) []byte {
	return append(buf, '\r', '\n')
}

// appendStatusLine appends "HTTP/VERSION STATUS\r\n" to buf.
func appendStatusLine(buf []byte, version string, status Status) []byte {
	buf = append(buf, "HTTP/"...)
	buf = append(buf, version...)
	buf = append(buf, ' ')
	buf = append(buf, status.text...)
	return appendCRLF(buf)
}

// appendHeader appends "Name: value\r\n" to buf.
func appendHeader(buf []byte, h ResponseHeader) []byte {
	buf = append(buf, h.name...)
	buf = append(buf, ':', ' ')
	buf = append(buf, h.value...)
	return appendCRLF(buf)
}
