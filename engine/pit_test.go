package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/require"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/spec"
	"github.com/ndn-go/face/transport/transporttest"
)

func newTestPit(t *testing.T, resend func(encoding.Wire) error) (*pit, *transporttest.FakeTimer) {
	timer := transporttest.NewFakeTimer()
	if resend == nil {
		resend = func(encoding.Wire) error { return nil }
	}
	var mu sync.Mutex
	return newPit(timer, resend, mu.Lock, mu.Unlock, log.WithField("test", "pit")), timer
}

func TestPitMatchForDataLongestMatch(t *testing.T) {
	p, _ := newTestPit(t, nil)
	nShort := mustName(t, "/a")
	nLong := mustName(t, "/a/b")

	eShort := p.insert(spec.NewInterest(nShort), nil, func(ndn.ExpressCallbackArgs) ndn.SinkAction { return ndn.SinkActionNone })
	eLong := p.insert(spec.NewInterest(nLong), nil, func(ndn.ExpressCallbackArgs) ndn.SinkAction { return ndn.SinkActionNone })

	got, ok := p.matchForData(mustName(t, "/a/b/c"))
	require.True(t, ok)
	require.Same(t, eLong, got)
	_ = eShort
}

func TestPitRemoveIsIdempotent(t *testing.T) {
	p, _ := newTestPit(t, nil)
	e := p.insert(spec.NewInterest(mustName(t, "/a")), nil, func(ndn.ExpressCallbackArgs) ndn.SinkAction { return ndn.SinkActionNone })
	p.remove(e)
	require.NotPanics(t, func() { p.remove(e) })
	require.Empty(t, p.entries)
}

func TestPitTimeoutDeliversTimeoutResult(t *testing.T) {
	p, timer := newTestPit(t, nil)
	it := spec.NewInterest(mustName(t, "/a"))
	it.InterestLifetime = 100 * time.Millisecond

	var gotResult ndn.InterestResult
	fired := false
	p.insert(it, nil, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		fired = true
		gotResult = args.Result
		return ndn.SinkActionNone
	})

	timer.MoveForward(200 * time.Millisecond)
	require.True(t, fired)
	require.Equal(t, ndn.InterestResultTimeout, gotResult)
	require.Empty(t, p.entries)
}

func TestPitReexpressionReinsertsAndResends(t *testing.T) {
	resent := 0
	p, timer := newTestPit(t, func(encoding.Wire) error { resent++; return nil })
	it := spec.NewInterest(mustName(t, "/a"))
	it.InterestLifetime = 100 * time.Millisecond

	calls := 0
	p.insert(it, encoding.Wire{[]byte("wire")}, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		calls++
		if calls == 1 {
			return ndn.SinkActionReexpress
		}
		return ndn.SinkActionNone
	})

	timer.MoveForward(100 * time.Millisecond)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, resent)
	require.Len(t, p.entries, 1)

	timer.MoveForward(100 * time.Millisecond)
	require.Equal(t, 2, calls)
	require.Empty(t, p.entries)
}

// A timer fire racing with a remove (because a matching Data already
// consumed the entry in the same dispatch turn) must be a no-op.
func TestPitTimeoutRacingRemoveIsNoop(t *testing.T) {
	p, timer := newTestPit(t, nil)
	it := spec.NewInterest(mustName(t, "/a"))
	it.InterestLifetime = 100 * time.Millisecond

	fired := false
	e := p.insert(it, nil, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		fired = true
		return ndn.SinkActionNone
	})
	p.remove(e)

	timer.MoveForward(200 * time.Millisecond)
	require.False(t, fired)
}

func TestPitClearCancelsAllWithoutInvokingSinks(t *testing.T) {
	p, timer := newTestPit(t, nil)
	it := spec.NewInterest(mustName(t, "/a"))
	it.InterestLifetime = 100 * time.Millisecond
	fired := false
	p.insert(it, nil, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		fired = true
		return ndn.SinkActionNone
	})

	p.clear()
	timer.MoveForward(200 * time.Millisecond)
	require.False(t, fired)
	require.Empty(t, p.entries)
}
