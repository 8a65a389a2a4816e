package engine

import (
	"slices"

	"github.com/apex/log"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/spec"
)

// pitEntry is one outstanding Interest. cancel stops its timer exactly
// once; removed guards against a timer firing after the entry was already
// consumed by a matching Data.
type pitEntry struct {
	interest *spec.Interest
	wire     encoding.Wire
	sink     ndn.ExpressCallbackFunc
	cancel   func()
	removed  bool
}

// pit is the Pending Interest Table: an unordered collection of entries
// keyed by identity, not name, because multiple Interests may share a
// prefix. Each entry owns its own timer directly rather than sharing one
// through a trie node.
type pit struct {
	entries []*pitEntry
	timer   ndn.Timer
	// resend re-encodes and transmits the Interest on re-expression. Set by
	// the owning Face so the PIT never imports the transport directly.
	resend func(encoding.Wire) error
	// lock/unlock are the owning Face's mutex, taken by fireTimer before it
	// touches entries since a timer fires on its own goroutine, unlike
	// every other caller here which already holds the Face's lock.
	lock   func()
	unlock func()
	log    *log.Entry
}

func newPit(timer ndn.Timer, resend func(encoding.Wire) error, lock, unlock func(), logger *log.Entry) *pit {
	return &pit{timer: timer, resend: resend, lock: lock, unlock: unlock, log: logger}
}

// insert appends a new entry and arms its lifetime timer. Callers must
// already hold the owning Face's lock.
func (p *pit) insert(it *spec.Interest, wire encoding.Wire, sink ndn.ExpressCallbackFunc) *pitEntry {
	e := &pitEntry{interest: it, wire: wire, sink: sink}
	p.entries = append(p.entries, e)
	e.cancel = p.timer.Schedule(it.Lifetime(), func() { p.fireTimer(e) })
	return e
}

// matchForData runs a longest-match over Interest names, tie-broken by
// insertion order (LongestMatch preserves iteration order on ties by only
// replacing on strictly-greater length).
func (p *pit) matchForData(name encoding.Name) (*pitEntry, bool) {
	return LongestMatch(p.entries, name, func(e *pitEntry) encoding.Name { return e.interest.Name() })
}

// remove cancels the entry's timer and drops it from the table. Idempotent.
func (p *pit) remove(e *pitEntry) {
	if e.removed {
		return
	}
	e.removed = true
	if e.cancel != nil {
		e.cancel()
	}
	if i := slices.Index(p.entries, e); i >= 0 {
		p.entries = slices.Delete(p.entries, i, i+1)
	}
}

// fireTimer runs on the timer's own goroutine, so it takes the owning
// Face's lock itself before touching entries, mirroring how the probe
// timer in face.go locks around its own callback. The lock is released
// before invoking the sink or resending, since either can re-enter the
// Face (ExpressInterest, transport.Send) and the Face's mutex is not
// reentrant. A fire that races with remove() (because the entry was
// already consumed by a matching Data in the same dispatch turn) is a
// no-op.
func (p *pit) fireTimer(e *pitEntry) {
	p.lock()
	if e.removed {
		p.unlock()
		return
	}
	p.remove(e)
	p.unlock()

	action := e.sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultTimeout})
	if action != ndn.SinkActionReexpress {
		return
	}

	p.lock()
	ne := p.insert(e.interest, e.wire, e.sink)
	p.unlock()
	if err := p.resend(ne.wire); err != nil {
		p.log.WithError(err).Warn("pit: resend on re-expression failed")
	}
}

// clear cancels every outstanding timer without invoking sinks, used by
// Face.Close.
func (p *pit) clear() {
	for _, e := range p.entries {
		e.removed = true
		if e.cancel != nil {
			e.cancel()
		}
	}
	p.entries = nil
}
