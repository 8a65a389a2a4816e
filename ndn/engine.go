package ndn

import (
	"time"

	"github.com/ndn-go/face/encoding"
)

// Timer is the engine's view of time and scheduling, grounded on the
// teacher's ndn.Timer (pkg/engine/basic/timer.go). The engine package never
// calls time.Now or time.AfterFunc directly so that tests can substitute a
// deterministic fake (transporttest.FakeTimer).
type Timer interface {
	Now() time.Time
	Sleep(time.Duration)
	// Schedule runs f after d elapses and returns a cancel function. Calling
	// cancel after f has already run is a safe no-op.
	Schedule(d time.Duration, f func()) func()
	Nonce() []byte
}

// ExpressCallbackArgs is passed to the sink registered with ExpressInterest
// when a result is ready.
type ExpressCallbackArgs struct {
	Result     InterestResult
	Data       Data
	RawData    encoding.Wire
	SigCovered encoding.Wire
	Error      error
}

// ExpressCallbackFunc is the PIT entry's sink. Returning SinkActionReexpress
// from a InterestResultTimeout call re-arms the Interest with a fresh timer;
// the return value is ignored for any other Result.
type ExpressCallbackFunc func(args ExpressCallbackArgs) SinkAction

// InterestHandlerArgs is passed to a registered-prefix sink for each inbound
// Interest that matches it.
type InterestHandlerArgs struct {
	Interest    Interest
	RawInterest encoding.Wire
	SigCovered  encoding.Wire
	Deadline    time.Time
}

// InterestHandler answers an inbound Interest. Returning InterestActionConsumed
// with a non-nil Data encodes and sends it back over the transport.
type InterestHandler func(args InterestHandlerArgs) (action InterestAction, reply Data)

// Data is the minimal view of a decoded Data packet the engine needs,
// satisfied by *spec.Data.
type Data interface {
	Name() encoding.Name
	Content() []byte
	Signature() Signature
	// SignedPortion returns the wire bytes covered by the signature, i.e.
	// everything up to but not including the SignatureValue element.
	SignedPortion() encoding.Wire
}

// Interest is the minimal view of a decoded Interest packet, satisfied by
// *spec.Interest.
type Interest interface {
	Name() encoding.Name
	Lifetime() time.Duration
	MatchesName(n encoding.Name) bool
}
