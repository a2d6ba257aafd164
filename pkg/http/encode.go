package http

import "io"

// Encoder writes rendered responses to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the wire encoding of resp to the stream.
func (enc *Encoder) Encode(resp *Response) error {
	_, err := enc.w.Write(resp.Render())
	return err
}
