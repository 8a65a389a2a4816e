package transport

import (
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/ndn-go/face/encoding"
)

// WebSocketTransport wires github.com/gorilla/websocket for the
// browser/websocket forwarder variant. Each inbound binary message is
// treated as exactly one framed element (the forwarder's websocket listener
// never splits a packet across messages), unlike the stream transport,
// which must parse TLV framing itself.
type WebSocketTransport struct {
	scheme string
	addr   string

	mu      sync.Mutex
	conn    *websocket.Conn
	running atomic.Bool

	onElement func(r encoding.ParseReader) error
	onClosed  func(err error)
}

// NewWebSocketTransport constructs a websocket transport. scheme is "ws"
// or "wss"; addr is host:port.
func NewWebSocketTransport(scheme, addr string) *WebSocketTransport {
	return &WebSocketTransport{scheme: scheme, addr: addr}
}

func (t *WebSocketTransport) SetCallbacks(onElement func(r encoding.ParseReader) error, onClosed func(err error)) {
	t.onElement = onElement
	t.onClosed = onClosed
}

func (t *WebSocketTransport) Open() error {
	if t.onElement == nil {
		return errors.New("transport: callbacks not set before Open")
	}
	t.mu.Lock()
	if t.conn != nil {
		t.mu.Unlock()
		return errors.New("transport: already open")
	}
	u := url.URL{Scheme: t.scheme, Host: t.addr, Path: "/"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.mu.Unlock()
		return errors.Wrapf(err, "transport: dial %s", u.String())
	}
	t.conn = conn
	t.running.Store(true)
	t.mu.Unlock()
	go t.run(conn)
	return nil
}

func (t *WebSocketTransport) run(conn *websocket.Conn) {
	var runErr error
	for t.running.Load() {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			runErr = err
			break
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		if err := t.onElement(encoding.NewBufferReader(data)); err != nil {
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

func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return errors.New("transport: not open")
	}
	t.running.Store(false)
	return conn.Close()
}

func (t *WebSocketTransport) Send(pkt encoding.Wire) error {
	if !t.running.Load() {
		return errors.New("transport: not running")
	}
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return errors.New("transport: not running")
	}
	return conn.WriteMessage(websocket.BinaryMessage, pkt.Join())
}

func (t *WebSocketTransport) IsRunning() bool { return t.running.Load() }
