package engine

import (
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/require"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/security"
	"github.com/ndn-go/face/spec"
	"github.com/ndn-go/face/transport"
	"github.com/ndn-go/face/transport/transporttest"
)

// S1: Echo. A single ExpressInterest whose matching Data is delivered
// straight back.
func TestFaceEchoRoundTrip(t *testing.T) {
	f, dt, _ := newTestFace(t)
	name := mustName(t, "/echo/1")

	var got ndn.InterestResult
	require.NoError(t, f.ExpressInterest(name, nil, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		got = args.Result
		return ndn.SinkActionNone
	}))

	sentWire, err := dt.Consume()
	require.NoError(t, err)
	pkt, err := spec.ReadPacket(encoding.NewBufferReader(sentWire))
	require.NoError(t, err)
	require.True(t, pkt.Interest.Name().Equal(name))

	d := spec.NewData(name, []byte("echoed"))
	replyWire, err := d.Encode(security.NewSha256Signer())
	require.NoError(t, err)
	require.NoError(t, dt.Deliver(replyWire.Join()))

	require.Equal(t, ndn.InterestResultData, got)
}

// S2: Timeout and re-expression. No Data ever arrives; the sink asks for
// one re-expression, then accepts the second timeout.
func TestFaceTimeoutThenReexpress(t *testing.T) {
	f, dt, timer := newTestFace(t)
	name := mustName(t, "/timeout/1")
	it := spec.NewInterest(name)
	it.InterestLifetime = 100 * time.Millisecond

	calls := 0
	require.NoError(t, f.ExpressInterest(name, it, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		calls++
		require.Equal(t, ndn.InterestResultTimeout, args.Result)
		if calls == 1 {
			return ndn.SinkActionReexpress
		}
		return ndn.SinkActionNone
	}))
	_, err := dt.Consume()
	require.NoError(t, err)

	timer.MoveForward(100 * time.Millisecond)
	require.Equal(t, 1, calls)
	_, err = dt.Consume()
	require.NoError(t, err, "re-expression must resend the Interest")

	timer.MoveForward(100 * time.Millisecond)
	require.Equal(t, 2, calls)
}

// S3: Failover. The first candidate never answers the probe and its probe
// timer expires; the strategy advances to the second candidate, which
// answers and completes Open.
func TestFaceFailoverAcrossHosts(t *testing.T) {
	var dts []*transporttest.DummyTransport
	timer := transporttest.NewFakeTimer()
	f := NewFace(Config{
		TransportFactory: func(host string, port uint16) transport.Transport {
			dt := transporttest.NewDummyTransport()
			dts = append(dts, dt)
			return dt
		},
		Hosts: []HostPort{{Host: "a", Port: 6363}, {Host: "b", Port: 6363}},
	}, timer, log.WithField("test", "failover"))

	opened := false
	f.cfg.OnOpen = func() { opened = true }

	require.NoError(t, f.Open())
	require.False(t, opened)
	require.Len(t, dts, 1)

	timer.MoveForward(3 * time.Second)
	require.Len(t, dts, 2, "exhausted probe timer must advance to the next candidate")
	require.False(t, opened)

	sentWire, err := dts[1].Consume()
	require.NoError(t, err)
	pkt, err := spec.ReadPacket(encoding.NewBufferReader(sentWire))
	require.NoError(t, err)
	require.Equal(t, encoding.Name{}, pkt.Interest.Name())

	probeReply := spec.NewData(encoding.Name{}, nil)
	wire, err := probeReply.Encode(security.NewEmptySigner())
	require.NoError(t, err)
	require.NoError(t, dts[1].Deliver(wire.Join()))

	require.True(t, opened)
}

// S4: Register then serve. After self-registration completes, an inbound
// Interest matching the registered prefix is answered.
func TestFaceRegisterThenServe(t *testing.T) {
	f, dt, _ := newTestFace(t)
	f.cfg.Signer = security.NewSha256Signer()

	prefix := mustName(t, "/app")
	var handled bool
	err := f.RegisterPrefix(prefix, func(args ndn.InterestHandlerArgs) (ndn.InterestAction, ndn.Data) {
		handled = true
		return ndn.InterestActionConsumed, spec.NewData(args.Interest.Name(), []byte("served"))
	}, 0)
	require.NoError(t, err)

	// Bootstrap Interest went out first.
	bootstrapWire, err := dt.Consume()
	require.NoError(t, err)
	pkt, err := spec.ReadPacket(encoding.NewBufferReader(bootstrapWire))
	require.NoError(t, err)
	require.NotNil(t, pkt.Interest)

	idData := spec.NewData(pkt.Interest.Name(), []byte("ndnd-test-id"))
	idWire, err := idData.Encode(security.NewSha256Signer())
	require.NoError(t, err)
	require.NoError(t, dt.Deliver(idWire.Join()))

	// Self-registration Interest went out next; the CST entry is installed
	// as soon as it is sent, independent of any forwarder reply.
	_, err = dt.Consume()
	require.NoError(t, err)

	inboundName := mustName(t, "/app/data")
	inbound := spec.NewInterest(inboundName)
	inboundWire := inbound.Encode()
	require.NoError(t, dt.Deliver(inboundWire.Join()))

	require.True(t, handled)
	replyWire, err := dt.Consume()
	require.NoError(t, err)
	replyPkt, err := spec.ReadPacket(encoding.NewBufferReader(replyWire))
	require.NoError(t, err)
	require.NotNil(t, replyPkt.Data)
	require.True(t, replyPkt.Data.Name().Equal(inboundName))
	require.Equal(t, []byte("served"), replyPkt.Data.Content())

	// Registering the same prefix again is rejected without sending a
	// second self-registration Interest.
	err = f.RegisterPrefix(prefix, func(args ndn.InterestHandlerArgs) (ndn.InterestAction, ndn.Data) {
		return ndn.InterestActionConsumed, spec.NewData(args.Interest.Name(), nil)
	}, 0)
	require.ErrorIs(t, err, ndn.ErrMultipleHandlers)
}

// S6: Close. PIT and CST are cleared, outstanding sinks are never invoked,
// and further calls are rejected.
func TestFaceClose(t *testing.T) {
	f, dt, timer := newTestFace(t)
	name := mustName(t, "/closing/1")
	it := spec.NewInterest(name)
	it.InterestLifetime = time.Second

	fired := false
	require.NoError(t, f.ExpressInterest(name, it, func(ndn.ExpressCallbackArgs) ndn.SinkAction {
		fired = true
		return ndn.SinkActionNone
	}))
	_, err := dt.Consume()
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.False(t, dt.IsRunning())

	timer.MoveForward(2 * time.Second)
	require.False(t, fired, "cleared PIT entries must not fire their sinks")

	err = f.ExpressInterest(name, nil, func(ndn.ExpressCallbackArgs) ndn.SinkAction { return ndn.SinkActionNone })
	require.ErrorIs(t, err, ndn.ErrFaceDown)

	err = f.Close()
	require.ErrorIs(t, err, ndn.ErrNotOpen)
}

func TestFaceOnPeerClose(t *testing.T) {
	f, dt, _ := newTestFace(t)
	var closeErr error
	called := false
	f.cfg.OnClose = func(err error) { called = true; closeErr = err }

	dt.SimulatePeerClose(nil)
	require.True(t, called)
	require.NoError(t, closeErr)
}
