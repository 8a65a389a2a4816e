// Package spec implements the wire codec for Interest, Data, ForwardingEntry
// and SignedInfo elements. It is a self-contained, structurally faithful
// codec, not a byte-exact port of the real NDN-TLV/NDNx binary-XML schema;
// its only contract is that it round-trips its own encoding.
package spec

import (
	"time"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
)

// Top-level element type tags.
const (
	TypeInterest        encoding.TLNum = 0x05
	TypeData            encoding.TLNum = 0x06
	TypeForwardingEntry encoding.TLNum = 0x81
)

// Interest field type tags.
const (
	tlName                     encoding.TLNum = 0x07
	tlSelectors                encoding.TLNum = 0x09
	tlMinSuffixComponents      encoding.TLNum = 0x0a
	tlMaxSuffixComponents      encoding.TLNum = 0x0b
	tlPublisherPublicKeyDigest encoding.TLNum = 0x0c
	tlExclude                  encoding.TLNum = 0x0d
	tlChildSelector            encoding.TLNum = 0x0e
	tlAnswerOriginKind         encoding.TLNum = 0x0f
	tlScope                    encoding.TLNum = 0x10
	tlInterestLifetime         encoding.TLNum = 0x0c // reused per-scope below the Selectors block
	tlNonce                    encoding.TLNum = 0x0a
)

// Data / SignedInfo field type tags.
const (
	tlSignedInfo     encoding.TLNum = 0x08
	tlContent        encoding.TLNum = 0x09
	tlSignature      encoding.TLNum = 0x0a
	tlPublisherKeyID encoding.TLNum = 0x0b
	tlTimestamp      encoding.TLNum = 0x0c
	tlKeyLocator     encoding.TLNum = 0x0d
	tlKeyName        encoding.TLNum = 0x0e
	tlKeyBytes       encoding.TLNum = 0x0f
	tlCertificate    encoding.TLNum = 0x10
	tlSignatureBits  encoding.TLNum = 0x11
	tlWitness        encoding.TLNum = 0x12
	tlDigestAlgo     encoding.TLNum = 0x13
)

// KeyLocatorKind is the tagged union a SignedInfo's locator carries.
type KeyLocatorKind int

const (
	KeyLocatorNone KeyLocatorKind = iota
	KeyLocatorName
	KeyLocatorKey
	KeyLocatorCert
)

// KeyLocator is the tagged locator value.
type KeyLocator struct {
	Kind        KeyLocatorKind
	KeyName     encoding.Name
	PublicKey   []byte
	Certificate []byte
}

// SignedInfo carries the key locator, digest algorithm, and timestamp that
// accompany a Data's content.
type SignedInfo struct {
	Locator        KeyLocator
	DigestAlgo     ndn.SigType
	Timestamp      time.Time
	PublisherKeyID []byte
}

// sig is the concrete ndn.Signature implementation decoded off the wire.
type sig struct {
	typ     ndn.SigType
	keyName encoding.Name
	nonce   []byte
	sigTime *time.Time
	seqNum  *uint64
	value   []byte
	witness []byte
}

func (s *sig) SigType() ndn.SigType   { return s.typ }
func (s *sig) KeyName() encoding.Name { return s.keyName }
func (s *sig) SigNonce() []byte       { return s.nonce }
func (s *sig) SigTime() *time.Time    { return s.sigTime }
func (s *sig) SigSeqNum() *uint64     { return s.seqNum }
func (s *sig) SigValue() []byte       { return s.value }
func (s *sig) Witness() []byte        { return s.witness }
