package ndn

import (
	"time"

	"github.com/ndn-go/face/encoding"
)

// Signature is the decoded signature metadata carried by an Interest or Data.
type Signature interface {
	SigType() SigType
	KeyName() encoding.Name
	SigNonce() []byte
	SigTime() *time.Time
	SigSeqNum() *uint64
	SigValue() []byte
	// Witness reports whether a Merkle witness is present; witnessed
	// signatures are unsupported and must be rejected.
	Witness() []byte
}

// Signer produces SignedInfo metadata and a signature value over a covered
// wire.
type Signer interface {
	SigInfo() (*SigConfig, error)
	EstimateSize() uint
	ComputeSigValue(covered encoding.Wire) ([]byte, error)
}

// SigChecker validates a decoded signature against its covered bytes,
// given the already-resolved public key material. Heavier verification
// (key fetching, caching) lives in the engine's verifier, not here.
type SigChecker func(sigCovered encoding.Wire, sig Signature, key []byte) bool

// SigConfig is the signer-supplied metadata that becomes a Data or Interest's
// SignedInfo before ComputeSigValue runs.
type SigConfig struct {
	Type    SigType
	KeyName encoding.Name
	Nonce   []byte
	SigTime *time.Time
	SeqNum  *uint64
}
