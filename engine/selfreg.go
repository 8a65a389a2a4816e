package engine

import (
	"time"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/security"
	"github.com/ndn-go/face/spec"
)

// bootstrapKeyName is the literal key-bootstrap name:
// /%C1.M.S.localhost/%C1.M.SRV/ndnd/KEY. Built from literal component
// text rather than encoding.NameFromStr, since the leading "%C1" would
// otherwise be misread as a percent-escape by the URI parser; the CCNx
// convention string is carried verbatim since this repo's wire codec is not
// required to be byte-exact against the real schema.
func bootstrapKeyName() encoding.Name {
	return encoding.Name{
		encoding.NewGenericComponent("%C1.M.S.localhost"),
		encoding.NewGenericComponent("%C1.M.SRV"),
		encoding.NewGenericComponent("ndnd"),
		encoding.NewGenericComponent("KEY"),
	}
}

const bootstrapInterestLifetime = 4 * time.Second
const selfRegLifetimeSeconds uint32 = 2147483647

// RegisterPrefix bootstraps the forwarder's identifier once, then signs and
// sends a self-registration Interest, appending a CST entry for the given
// sink.
func (f *Face) RegisterPrefix(name encoding.Name, sink ndn.InterestHandler, flags uint32) error {
	flags |= 3

	f.mu.Lock()
	if f.state != StateOpened {
		f.mu.Unlock()
		return ndn.ErrFaceDown
	}
	if f.cst.has(name) {
		f.mu.Unlock()
		return ndn.ErrMultipleHandlers
	}
	hasID := f.ndndID != nil
	f.mu.Unlock()

	if !hasID {
		return f.bootstrapThenRegister(name, sink, flags)
	}
	return f.sendSelfReg(name, sink, flags)
}

// bootstrapThenRegister expresses an Interest for the well-known bootstrap
// name; on response, it stores the publisher key digest and continues; on
// timeout it aborts with a diagnostic and no sink invocation, so the
// registration simply never completes.
func (f *Face) bootstrapThenRegister(name encoding.Name, sink ndn.InterestHandler, flags uint32) error {
	it := spec.NewInterest(bootstrapKeyName())
	it.InterestLifetime = bootstrapInterestLifetime
	return f.ExpressInterest(bootstrapKeyName(), it, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		if args.Result != ndn.InterestResultData && args.Result != ndn.InterestResultUnverified {
			f.log.Warn("ndnd-id bootstrap timed out, aborting register_prefix")
			return ndn.SinkActionNone
		}
		keyData, ok := args.Data.(*spec.Data)
		if !ok {
			f.log.Warn("ndnd-id bootstrap response was not Data, aborting register_prefix")
			return ndn.SinkActionNone
		}
		id := keyData.Info.PublisherKeyID
		if len(id) == 0 {
			id = keyData.Content()
		}
		f.mu.Lock()
		f.ndndID = id
		f.mu.Unlock()
		if err := f.sendSelfReg(name, sink, flags); err != nil {
			f.log.WithError(err).Warn("self-registration failed after bootstrap")
		}
		return ndn.SinkActionNone
	})
}

// sendSelfReg implements the self-registration protocol: a signed Data
// envelope carrying a ForwardingEntry, embedded as the final component of
// /ndnx/<ndnd-id>/selfreg/<encoded-data>. The Interest's Scope field is set
// to 1, but spec.Interest.Encode does not write Scope, so the Interest on
// the wire carries no scope.
func (f *Face) sendSelfReg(name encoding.Name, sink ndn.InterestHandler, flags uint32) error {
	fe := &spec.ForwardingEntry{
		Action:   "selfreg",
		Prefix:   name,
		Flags:    flags,
		Lifetime: selfRegLifetimeSeconds,
	}
	envelope := spec.NewData(name, fe.Encode().Join())

	signer := f.cfg.Signer
	if signer == nil {
		signer = security.NewSha256Signer()
	}
	envelopeWire, err := envelope.Encode(signer)
	if err != nil {
		return err
	}

	f.mu.Lock()
	ndndID := f.ndndID
	f.mu.Unlock()

	scope := 1
	interestName := encoding.Name{encoding.NewGenericComponent("ndnx")}.
		Append(encoding.NewGenericComponent(string(ndndID))).
		Append(encoding.NewGenericComponent("selfreg")).
		Append(encoding.Component{Typ: encoding.TypeGenericNameComponent, Val: envelopeWire.Join()})

	it := spec.NewInterest(interestName)
	it.Scope = &scope

	if err := f.ExpressInterest(interestName, it, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		if args.Result == ndn.InterestResultTimeout {
			f.log.WithField("prefix", name.String()).Warn("self-registration Interest timed out")
		}
		return ndn.SinkActionNone
	}); err != nil {
		return err
	}

	f.mu.Lock()
	f.cst.register(name, sink, flags)
	f.mu.Unlock()
	return nil
}
