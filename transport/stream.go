package transport

import (
	"bufio"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/ndn-go/face/encoding"
)

// StreamTransport is a TCP or Unix stream socket transport. Element
// framing reads a TLNum type, a TLNum length, then the body, repeating for
// as long as the connection stays open.
type StreamTransport struct {
	network string
	addr    string

	mu      sync.Mutex
	conn    net.Conn
	running atomic.Bool

	onElement func(r encoding.ParseReader) error
	onClosed  func(err error)
}

// NewStreamTransport constructs a stream transport for the given network
// ("tcp", "unix") and address.
func NewStreamTransport(network, addr string) *StreamTransport {
	return &StreamTransport{network: network, addr: addr}
}

func (t *StreamTransport) SetCallbacks(onElement func(r encoding.ParseReader) error, onClosed func(err error)) {
	t.onElement = onElement
	t.onClosed = onClosed
}

func (t *StreamTransport) Open() error {
	if t.onElement == nil {
		return errors.New("transport: callbacks not set before Open")
	}
	t.mu.Lock()
	if t.conn != nil {
		t.mu.Unlock()
		return errors.New("transport: already open")
	}
	conn, err := net.Dial(t.network, t.addr)
	if err != nil {
		t.mu.Unlock()
		return errors.Wrapf(err, "transport: dial %s %s", t.network, t.addr)
	}
	t.conn = conn
	t.running.Store(true)
	t.mu.Unlock()
	go t.run(conn)
	return nil
}

func (t *StreamTransport) run(conn net.Conn) {
	r := bufio.NewReader(conn)
	var runErr error
	for t.running.Load() {
		typ, err := encoding.ReadTLNum(r)
		if err != nil {
			runErr = err
			break
		}
		length, err := encoding.ReadTLNum(r)
		if err != nil {
			runErr = err
			break
		}
		l0 := typ.EncodingLength()
		l1 := length.EncodingLength()
		buf := make(encoding.Buffer, l0+l1+int(length))
		typ.EncodeInto(buf)
		length.EncodeInto(buf[l0:])
		if _, err := io.ReadFull(r, buf[l0+l1:]); err != nil {
			runErr = err
			break
		}
		if err := t.onElement(encoding.NewBufferReader(buf)); err != nil {
			runErr = err
			break
		}
	}
	t.running.Store(false)
	t.mu.Lock()
	t.conn = nil
	t.mu.Unlock()
	if t.onClosed != nil {
		t.onClosed(runErr)
	}
}

func (t *StreamTransport) Close() error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return errors.New("transport: not open")
	}
	t.running.Store(false)
	return conn.Close()
}

func (t *StreamTransport) Send(pkt encoding.Wire) error {
	if !t.running.Load() {
		return errors.New("transport: not running")
	}
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return errors.New("transport: not running")
	}
	for _, buf := range pkt {
		if _, err := conn.Write(buf); err != nil {
			return errors.Wrap(err, "transport: write")
		}
	}
	return nil
}

func (t *StreamTransport) IsRunning() bool { return t.running.Load() }
