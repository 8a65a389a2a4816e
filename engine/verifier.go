package engine

import (
	"crypto/x509"

	"github.com/apex/log"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/security"
	"github.com/ndn-go/face/spec"
)

// keyFetchPrefixLen is the component count of the nested key-fetch Interest
// sent when a KeyName locator misses the cache.
const keyFetchPrefixLen = 4

// verifier orchestrates signature verification on every inbound Data,
// including recursive key fetching through the owning Face.
type verifier struct {
	face *Face
	log  *log.Entry
}

func newVerifier(face *Face, logger *log.Entry) *verifier {
	return &verifier{face: face, log: logger}
}

// verify delivers at most one result to sink, synchronously or after a
// nested key fetch completes. If the nested key fetch times out or fails,
// sink is never invoked.
func (v *verifier) verify(d *spec.Data, verifyEnabled bool, sink ndn.ExpressCallbackFunc) {
	if !verifyEnabled {
		sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultUnverified, Data: d, SigCovered: d.SignedPortion()})
		return
	}
	if d.Sig != nil && len(d.Sig.Witness()) > 0 {
		v.log.Warn("rejecting Data with witness, unsupported")
		sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultBad, Data: d})
		return
	}

	switch d.Info.Locator.Kind {
	case spec.KeyLocatorName:
		v.verifyKeyName(d, sink)
	case spec.KeyLocatorKey:
		ok := v.checkWithRawKey(d.SignedPortion(), d.Sig, d.Info.Locator.PublicKey)
		if ok {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultData, Data: d, SigCovered: d.SignedPortion()})
		} else {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultBad, Data: d})
		}
	case spec.KeyLocatorCert:
		v.log.Warn("cert key locator verification not implemented")
		sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultBad, Data: d})
	default:
		// No locator at all: only a bare digest signature is self-verifying
		// without one.
		if d.Sig != nil && d.Sig.SigType() == ndn.SignatureDigestSha256 && v.checkWithRawKey(d.SignedPortion(), d.Sig, nil) {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultData, Data: d, SigCovered: d.SignedPortion()})
		} else {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultBad, Data: d})
		}
	}
}

func (v *verifier) verifyKeyName(d *spec.Data, sink ndn.ExpressCallbackFunc) {
	locatorName := d.Info.Locator.KeyName
	if locatorName.IsPrefixOf(d.Name()) {
		// Self-referential: the key itself is this Data's own content.
		ok := v.checkWithRawKey(d.SignedPortion(), d.Sig, d.Content())
		if ok {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultData, Data: d, SigCovered: d.SignedPortion()})
		} else {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultBad, Data: d})
		}
		return
	}

	v.face.mu.Lock()
	entry, hit := v.face.keyCache.lookup(locatorName)
	now := v.face.timer.Now()
	v.face.mu.Unlock()
	if hit {
		ok := v.checkWithRawKey(d.SignedPortion(), d.Sig, entry.key)
		if ok {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultData, Data: d, SigCovered: d.SignedPortion()})
		} else {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultBad, Data: d})
		}
		return
	}

	fetchName := locatorName.GetPrefix(keyFetchPrefixLen)
	if len(fetchName) == 0 {
		fetchName = locatorName
	}
	v.log.WithField("keyName", fetchName.String()).Debug("key cache miss, fetching key")

	// One-shot nested Interest, expressed directly rather than deferred
	// through the timer: this call re-enters the Face from inside the
	// current Data dispatch, which is safe because the PIT removal above
	// already completed.
	err := v.face.ExpressInterest(fetchName, nil, func(args ndn.ExpressCallbackArgs) ndn.SinkAction {
		if args.Result != ndn.InterestResultData {
			// Nested Interest timed out or failed: the original request
			// receives no delivery.
			return ndn.SinkActionNone
		}
		keyData, ok := args.Data.(*spec.Data)
		if !ok {
			return ndn.SinkActionNone
		}
		ok = v.checkWithRawKey(d.SignedPortion(), d.Sig, keyData.Content())
		if ok {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultData, Data: d, SigCovered: d.SignedPortion()})
		} else {
			sink(ndn.ExpressCallbackArgs{Result: ndn.InterestResultBad, Data: d})
		}
		v.face.mu.Lock()
		v.face.keyCache.insert(locatorName, keyData.Content(), now)
		v.face.mu.Unlock()
		return ndn.SinkActionNone
	})
	if err != nil {
		v.log.WithError(err).Warn("failed to express nested key-fetch Interest")
	}
}

// checkWithRawKey parses keyBytes as an ASN.1 DER SubjectPublicKeyInfo, the
// convention ndn-cxx's PIB uses for stored keys, and dispatches to the
// matching validator for sig's algorithm. A bare sha256 digest signature has
// no key material to parse at all.
func (v *verifier) checkWithRawKey(sigCovered encoding.Wire, sig ndn.Signature, keyBytes []byte) bool {
	if sig == nil {
		return false
	}
	if sig.SigType() == ndn.SignatureDigestSha256 {
		return security.Sha256Validate(sigCovered, sig)
	}
	if sig.SigType() == ndn.SignatureHmacWithSha256 {
		return security.HmacValidate(sigCovered, sig, keyBytes)
	}
	pub, err := x509.ParsePKIXPublicKey(keyBytes)
	if err != nil {
		v.log.WithError(err).Debug("failed to parse public key")
		return false
	}
	return security.ValidateByType(sigCovered, sig, pub)
}
