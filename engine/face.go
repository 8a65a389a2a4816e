package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/spec"
	"github.com/ndn-go/face/transport"
)

// FaceState tracks whether a Face is usable for Express/RegisterPrefix.
type FaceState int

const (
	StateUnopen FaceState = iota
	StateOpened
	StateClosed
)

func (s FaceState) String() string {
	switch s {
	case StateOpened:
		return "opened"
	case StateClosed:
		return "closed"
	default:
		return "unopen"
	}
}

const defaultPort uint16 = 6363

// probeTimeout bounds how long a candidate forwarder has to answer a probe
// before the host strategy advances to the next one.
const probeTimeout = 3 * time.Second

// probeInterestLifetime is the 4-second lifetime of the candidate probe.
const probeInterestLifetime = 4 * time.Second

// TransportFactory builds a fresh transport for one candidate endpoint.
// The Face never reuses a transport instance across a reconnect.
type TransportFactory func(host string, port uint16) transport.Transport

// Config configures a new Face. Exactly one of Host or Hosts should be
// set: Host for a single fixed endpoint (no failover), Hosts to drive the
// host-and-port strategy.
type Config struct {
	TransportFactory TransportFactory
	Host             string
	Port             uint16
	Hosts            []HostPort
	VerifyEnabled    bool
	Signer           ndn.Signer
	Rand             *rand.Rand
	OnOpen           func()
	OnClose          func(err error)
}

// Face is the public API (ExpressInterest, RegisterPrefix, Close) driving
// the PIT/CST/verifier against a transport. Each Face owns its own tables;
// two Face instances in one process never share state. Open drives a
// connect/reconnect/host-probing state machine on top of the transport.
type Face struct {
	mu  sync.Mutex
	cfg Config

	timer ndn.Timer
	log   *log.Entry

	state FaceState

	transport   transport.Transport
	host        string
	port        uint16
	hasEndpoint bool

	ndndID []byte

	strategy    *hostStrategy
	probing     bool
	probeCancel func()
	pending     []func()

	pit      *pit
	cst      *cst
	keyCache *keyCache
	verifier *verifier
}

// NewFace constructs an unopened Face. Call Open to start the transport
// lifecycle.
func NewFace(cfg Config, timer ndn.Timer, logger *log.Entry) *Face {
	if logger == nil {
		logger = log.WithField("module", "face")
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	f := &Face{cfg: cfg, timer: timer, log: logger, cst: newCst(), keyCache: newKeyCache()}
	f.pit = newPit(timer, f.resend, f.mu.Lock, f.mu.Unlock, logger.WithField("module", "pit"))
	f.verifier = newVerifier(f, logger.WithField("module", "verifier"))
	return f
}

func (f *Face) resend(wire encoding.Wire) error {
	f.mu.Lock()
	t := f.transport
	f.mu.Unlock()
	if t == nil || !t.IsRunning() {
		return ndn.ErrFaceDown
	}
	return t.Send(wire)
}

// Open starts the transport lifecycle: a direct connect if cfg.Host is
// set, or the host-and-port strategy's probing sequence if cfg.Hosts is.
func (f *Face) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateUnopen {
		return errors.New("engine: face already opened")
	}
	if f.cfg.Host != "" {
		return f.connectLocked(f.cfg.Host, f.cfg.Port)
	}
	if len(f.cfg.Hosts) > 0 {
		f.strategy = newHostStrategy(f.cfg.Hosts, f.cfg.Rand)
		return f.probeNextLocked()
	}
	return ndn.ErrInvalidValue
}

func (f *Face) connectLocked(host string, port uint16) error {
	if f.transport != nil {
		f.transport.Close()
	}
	t := f.cfg.TransportFactory(host, port)
	t.SetCallbacks(f.onElement, f.onClosed)
	if err := t.Open(); err != nil {
		return errors.Wrapf(err, "engine: connect to %s:%d", host, port)
	}
	f.transport = t
	f.host, f.port, f.hasEndpoint = host, port, true
	f.state = StateOpened
	f.log.WithField("host", host).WithField("port", port).Info("face opened")
	if f.cfg.OnOpen != nil {
		f.cfg.OnOpen()
	}
	f.runPendingLocked()
	return nil
}

// probeNextLocked opens a transport to the next candidate, expresses a
// probe Interest for "/", and arms a probe timer that advances to the next
// candidate on expiry.
func (f *Face) probeNextLocked() error {
	candidate, ok := f.strategy.nextCandidate()
	if !ok {
		f.probing = false
		f.log.Warn("host strategy exhausted, no candidate forwarder answered")
		return nil
	}
	f.probing = true
	t := f.cfg.TransportFactory(candidate.Host, candidate.Port)
	t.SetCallbacks(f.onElement, f.onClosed)
	if err := t.Open(); err != nil {
		f.log.WithField("host", candidate.Host).WithError(err).Debug("probe dial failed, trying next")
		return f.probeNextLocked()
	}
	f.transport = t

	root, _ := encoding.NameFromStr("/")
	it := spec.NewInterest(root)
	it.InterestLifetime = probeInterestLifetime
	wire := it.Encode()

	entry := f.pit.insert(it, wire, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		f.mu.Lock()
		defer f.mu.Unlock()
		if args.Result != ndn.InterestResultTimeout && f.probing {
			f.onProbeSuccessLocked(candidate)
		}
		return ndn.SinkActionNone
	})
	if err := t.Send(wire); err != nil {
		f.pit.remove(entry)
		t.Close()
		return f.probeNextLocked()
	}
	f.probeCancel = f.timer.Schedule(probeTimeout, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.probing {
			return
		}
		f.pit.remove(entry)
		t.Close()
		f.probeNextLocked()
	})
	return nil
}

func (f *Face) onProbeSuccessLocked(candidate HostPort) {
	f.probing = false
	if f.probeCancel != nil {
		f.probeCancel()
		f.probeCancel = nil
	}
	f.host, f.port, f.hasEndpoint = candidate.Host, candidate.Port, true
	f.state = StateOpened
	f.log.WithField("host", candidate.Host).Info("face opened via host strategy")
	if f.cfg.OnOpen != nil {
		f.cfg.OnOpen()
	}
	f.runPendingLocked()
}

func (f *Face) runPendingLocked() {
	pending := f.pending
	f.pending = nil
	for _, cont := range pending {
		cont()
	}
}

func buildInterestFromTemplate(name encoding.Name, template *spec.Interest) *spec.Interest {
	it := spec.NewInterest(name)
	if template != nil {
		it.MinSuffixComponents = template.MinSuffixComponents
		it.MaxSuffixComponents = template.MaxSuffixComponents
		it.PublisherPublicKeyDigest = template.PublisherPublicKeyDigest
		it.Exclude = template.Exclude
		it.ChildSelector = template.ChildSelector
		it.AnswerOriginKind = template.AnswerOriginKind
		it.Scope = template.Scope
		if template.InterestLifetime > 0 {
			it.InterestLifetime = template.InterestLifetime
		}
	}
	return it
}

// ExpressInterest sends it and arms a PIT entry. If the host/port are not
// yet known, the call is deferred until the host strategy (or an explicit
// connect) succeeds; it never blocks the caller.
func (f *Face) ExpressInterest(name encoding.Name, template *spec.Interest, sink ndn.ExpressCallbackFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	it := buildInterestFromTemplate(name, template)
	if f.state == StateClosed {
		return ndn.ErrFaceDown
	}
	if !f.hasEndpoint {
		f.pending = append(f.pending, func() { f.doExpressLocked(it, sink) })
		if f.strategy != nil && !f.probing {
			f.probeNextLocked()
		}
		return nil
	}
	return f.doExpressLocked(it, sink)
}

func (f *Face) doExpressLocked(it *spec.Interest, sink ndn.ExpressCallbackFunc) error {
	wire := it.Encode()
	var entry *pitEntry
	if sink != nil {
		entry = f.pit.insert(it, wire, sink)
	}
	if f.transport == nil || !f.transport.IsRunning() {
		if entry != nil {
			f.pit.remove(entry)
		}
		if sink != nil {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultError, Error: ndn.ErrFaceDown})
		}
		return ndn.ErrFaceDown
	}
	if err := f.transport.Send(wire); err != nil {
		if entry != nil {
			f.pit.remove(entry)
		}
		if sink != nil {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultError, Error: err})
		}
		return err
	}
	return nil
}

// Close tears down the transport and clears the PIT/CST without invoking
// any outstanding sinks.
func (f *Face) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateOpened {
		return ndn.ErrNotOpen
	}
	f.state = StateClosed
	f.pit.clear()
	f.cst.clear()
	if f.probeCancel != nil {
		f.probeCancel()
		f.probeCancel = nil
	}
	if f.transport != nil {
		f.transport.Close()
	}
	return nil
}

// onClosed is the transport's upcall when the peer closes the connection.
func (f *Face) onClosed(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateClosed {
		return
	}
	f.state = StateClosed
	f.pit.clear()
	f.cst.clear()
	if f.cfg.OnClose != nil {
		f.cfg.OnClose(err)
	}
}

// onElement is the inbound dispatch entrypoint, wired as the transport's
// element callback.
func (f *Face) onElement(r encoding.ParseReader) error {
	pkt, err := spec.ReadPacket(r)
	if err != nil {
		f.log.WithError(err).Debug("discarding unparseable element")
		return nil
	}
	switch {
	case pkt.Interest != nil:
		f.dispatchInterest(pkt.Interest)
	case pkt.Data != nil:
		f.dispatchData(pkt.Data)
	default:
		f.log.Debug("discarding element of unhandled top-level type")
	}
	return nil
}

func (f *Face) dispatchInterest(it *spec.Interest) {
	f.mu.Lock()
	entry, ok := f.cst.lookup(it.Name())
	var t transport.Transport
	if ok {
		t = f.transport
	}
	f.mu.Unlock()
	if !ok {
		return
	}
	action, reply := entry.sink(ndn.InterestHandlerArgs{
		Interest: it,
		Deadline: f.timer.Now().Add(it.Lifetime()),
	})
	if action != ndn.InterestActionConsumed || reply == nil || t == nil {
		return
	}
	signer := f.cfg.Signer
	if signer == nil {
		return
	}
	d, ok := reply.(*spec.Data)
	if !ok {
		return
	}
	wire, err := d.Encode(signer)
	if err != nil {
		f.log.WithError(err).Warn("failed to encode reply Data")
		return
	}
	if err := t.Send(wire); err != nil {
		f.log.WithError(err).Warn("failed to send reply Data")
	}
}

func (f *Face) dispatchData(d *spec.Data) {
	f.mu.Lock()
	entry, ok := f.pit.matchForData(d.Name())
	if ok {
		f.pit.remove(entry)
	}
	verifyEnabled := f.cfg.VerifyEnabled
	f.mu.Unlock()
	if !ok {
		return
	}
	f.verifier.verify(d, verifyEnabled, entry.sink)
}
