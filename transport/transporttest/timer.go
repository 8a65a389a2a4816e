package transporttest

import (
	"sync"
	"time"
)

type event struct {
	at       time.Time
	f        func()
	fired    bool
	canceled bool
}

// FakeTimer is a deterministic ndn.Timer: time only advances when the test
// calls MoveForward, and Schedule/cancel are exact rather than wall-clock
// races.
type FakeTimer struct {
	mu     sync.Mutex
	now    time.Time
	events []*event
}

func NewFakeTimer() *FakeTimer {
	return &FakeTimer{now: time.Unix(0, 0).UTC()}
}

func (tm *FakeTimer) Now() time.Time { return tm.now }

// MoveForward advances the clock by d and fires every event whose deadline
// has passed, in deadline order.
func (tm *FakeTimer) MoveForward(d time.Duration) {
	tm.mu.Lock()
	tm.now = tm.now.Add(d)
	now := tm.now
	due := make([]*event, 0)
	for _, e := range tm.events {
		if !e.fired && !e.canceled && !e.at.After(now) {
			due = append(due, e)
		}
	}
	tm.mu.Unlock()

	for _, e := range due {
		tm.mu.Lock()
		alreadyFired := e.fired || e.canceled
		e.fired = true
		tm.mu.Unlock()
		if !alreadyFired {
			e.f()
		}
	}
}

func (tm *FakeTimer) Schedule(d time.Duration, f func()) func() {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	e := &event{at: tm.now.Add(d), f: f}
	tm.events = append(tm.events, e)
	return func() {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		e.canceled = true
	}
}

func (tm *FakeTimer) Sleep(d time.Duration) {
	ch := make(chan struct{})
	tm.Schedule(d, func() { close(ch) })
	<-ch
}

func (tm *FakeTimer) Nonce() []byte {
	return []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
}
