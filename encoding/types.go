// Package encoding provides the low-level byte and TLV primitives (Buffer,
// Wire, Name, Component) shared by the spec and engine packages. It is the
// wire-codec boundary described by the Face's external interfaces: the Face
// only ever sees a Name, a Wire, or a fully decoded packet, never raw bytes.
package encoding

import (
	"errors"
	"fmt"
	"io"
)

// Buffer is a contiguous slice of bytes.
type Buffer []byte

// Wire is a list of Buffers, possibly non-contiguous, that together make up
// one encoded element.
type Wire []Buffer

// Join concatenates a Wire into one contiguous Buffer.
func (w Wire) Join() []byte {
	if len(w) == 0 {
		return []byte{}
	}
	if len(w) == 1 {
		return w[0]
	}
	n := 0
	for _, v := range w {
		n += len(v)
	}
	b := make([]byte, n)
	pos := 0
	for _, v := range w {
		pos += copy(b[pos:], v)
	}
	return b
}

// ParseReader is the minimal interface the codec needs to decode a TLV
// element without knowing whether it originated from one contiguous buffer
// or several fragments delivered by a transport.
type ParseReader interface {
	io.Reader
	io.ByteScanner

	ReadWire(l int) (Wire, error)
	Range(start, end int) Wire
	Pos() int
	Length() int
	Skip(n int) error
}

var ErrBufferOverflow = errors.New("encoding: buffer overflow while parsing a TLV length")

// ErrUnknownElement is returned by a top-level decoder when a TLV type tag
// is not one it recognizes; callers should discard the element and log.
var ErrUnknownElement = errors.New("encoding: unrecognized top-level element type")

type ErrFormat struct{ Msg string }

func (e ErrFormat) Error() string { return e.Msg }

type ErrUnexpected struct{ Err error }

func (e ErrUnexpected) Error() string { return fmt.Sprintf("unexpected encoding error: %v", e.Err) }
func (e ErrUnexpected) Unwrap() error { return e.Err }
