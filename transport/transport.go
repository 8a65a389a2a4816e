// Package transport implements the byte-level transport contract: connect,
// send, close, with upward delivery of fully-framed elements.
package transport

import "github.com/ndn-go/face/encoding"

// Transport is an opaque byte stream to a forwarder. The Face never sees
// raw bytes: onElement is called once per fully-framed element, in arrival
// order, and onClosed surfaces transport-level failures and closes.
type Transport interface {
	Open() error
	Close() error
	Send(pkt encoding.Wire) error
	IsRunning() bool

	// SetCallbacks wires the Face's dispatch and close handlers. Must be
	// called before Open.
	SetCallbacks(onElement func(r encoding.ParseReader) error, onClosed func(err error))
}
