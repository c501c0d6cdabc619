// Package wire implements "SSH-style u32be-length-then-bytes" framing,
// the same convention golang.org/x/crypto/ssh uses for its own wire
// format, and the form the box binary format's to_binary/from_binary
// is built from. It sits alongside pkg/tlv as a second, flatter codec: tlv's
// push/pop framing suits the nested BER trees PIV objects use, while
// ebox's format is a flat sequence of length-prefixed fields, so it
// gets its own minimal writer/reader rather than forcing it through
// tlv's tag-oriented API.
package wire

import (
	"encoding/binary"
	"fmt"
)

// Writer appends length-prefixed fields to an internal buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with an empty backing buffer.
func NewWriter() *Writer {
	return &Writer{}
}

// U8 appends a single byte, unprefixed.
func (w *Writer) U8(b byte) {
	w.buf = append(w.buf, b)
}

// Raw appends b verbatim, with no length prefix.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes appends b prefixed with its length as a big-endian u32.
func (w *Writer) Bytes(b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, b...)
}

// CString appends s as a length-prefixed byte string — length-prefixed,
// not NUL-terminated, matching SSH's own wire convention for strings.
func (w *Writer) CString(s string) {
	w.Bytes([]byte(s))
}

// Buf returns the accumulated buffer.
func (w *Writer) Buf() []byte {
	return w.buf
}

// Reader walks a buffer built by Writer, consuming fields in order.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reads starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ErrShortRead is returned whenever a field's declared or implied length
// runs past the end of the buffer.
var ErrShortRead = fmt.Errorf("wire: short read")

// U8 reads a single unprefixed byte.
func (r *Reader) U8() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrShortRead
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// Raw reads exactly n unprefixed bytes.
func (r *Reader) Raw(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, ErrShortRead
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Bytes reads a big-endian u32 length prefix followed by that many bytes.
func (r *Reader) Bytes() ([]byte, error) {
	if r.pos+4 > len(r.buf) {
		return nil, ErrShortRead
	}
	n := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return r.Raw(int(n))
}

// CString reads a length-prefixed byte string as a Go string.
func (r *Reader) CString() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Remaining returns every byte not yet consumed.
func (r *Reader) Remaining() []byte {
	return r.buf[r.pos:]
}

// Done reports whether the buffer has been fully consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}
