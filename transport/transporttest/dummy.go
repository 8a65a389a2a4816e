// Package transporttest provides the test doubles every engine test in this
// repo is built on: DummyTransport (a transport.Transport with no real
// socket) and FakeTimer (a deterministic ndn.Timer), grounded on the
// teacher's pkg/engine/dummy package.
package transporttest

import (
	"errors"

	"github.com/ndn-go/face/encoding"
)

// DummyTransport records every sent element for inspection and lets a test
// inject inbound elements via Deliver, rather than opening a real socket.
type DummyTransport struct {
	running bool
	sent    []encoding.Buffer

	onElement func(r encoding.ParseReader) error
	onClosed  func(err error)
}

func NewDummyTransport() *DummyTransport { return &DummyTransport{} }

func (t *DummyTransport) SetCallbacks(onElement func(r encoding.ParseReader) error, onClosed func(err error)) {
	t.onElement = onElement
	t.onClosed = onClosed
}

func (t *DummyTransport) Open() error {
	if t.onElement == nil {
		return errors.New("transporttest: callbacks not set before Open")
	}
	if t.running {
		return errors.New("transporttest: already open")
	}
	t.running = true
	return nil
}

// Close is a local, intentional shutdown: it does not invoke onClosed. The
// real transports' read loops do call onClosed asynchronously once a local
// Close makes their read fail; Face.onClosed ignores that call because
// Face.Close has already set the state to closed. Use SimulatePeerClose to
// exercise the peer-initiated path.
func (t *DummyTransport) Close() error {
	if !t.running {
		return errors.New("transporttest: not open")
	}
	t.running = false
	return nil
}

// SimulatePeerClose marks the transport closed and invokes onClosed, as a
// real transport's read loop would upon seeing the peer hang up.
func (t *DummyTransport) SimulatePeerClose(err error) {
	t.running = false
	if t.onClosed != nil {
		t.onClosed(err)
	}
}

func (t *DummyTransport) Send(pkt encoding.Wire) error {
	if !t.running {
		return errors.New("transporttest: not running")
	}
	t.sent = append(t.sent, pkt.Join())
	return nil
}

func (t *DummyTransport) IsRunning() bool { return t.running }

// Consume pops the oldest sent element, for assertions against what the
// Face actually put on the wire.
func (t *DummyTransport) Consume() (encoding.Buffer, error) {
	if len(t.sent) == 0 {
		return nil, errors.New("transporttest: no packet to consume")
	}
	pkt := t.sent[0]
	t.sent = t.sent[1:]
	return pkt, nil
}

// Deliver simulates an inbound element arriving from the forwarder.
func (t *DummyTransport) Deliver(pkt encoding.Buffer) error {
	if !t.running {
		return errors.New("transporttest: not running")
	}
	return t.onElement(encoding.NewBufferReader(pkt))
}
