package engine

import (
	"crypto/rand"
	"time"

	"github.com/ndn-go/face/ndn"
)

// realTimer is the wall-clock ndn.Timer a Face uses outside of tests.
type realTimer struct{}

// NewRealTimer returns the wall-clock Timer implementation.
func NewRealTimer() ndn.Timer {
	return realTimer{}
}

func (realTimer) Now() time.Time { return time.Now() }

func (realTimer) Sleep(d time.Duration) { time.Sleep(d) }

func (realTimer) Schedule(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

func (realTimer) Nonce() []byte {
	buf := make([]byte, 8)
	rand.Read(buf)
	return buf
}
