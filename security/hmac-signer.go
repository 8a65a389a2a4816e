package security

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/utils"
)

// CheckHmacSig recomputes HMAC-SHA256 over sigCovered with key and compares
// constant-time against value.
func CheckHmacSig(sigCovered encoding.Wire, value []byte, key []byte) bool {
	mac := hmac.New(sha256.New, key)
	for _, buf := range sigCovered {
		mac.Write(buf)
	}
	return hmac.Equal(mac.Sum(nil), value)
}

// hmacSigner is a Data signer that uses a shared HMAC key, no key locator.
type hmacSigner struct{ key []byte }

func NewHmacSigner(key []byte) ndn.Signer { return hmacSigner{key: key} }

func (hmacSigner) SigInfo() (*ndn.SigConfig, error) {
	return &ndn.SigConfig{Type: ndn.SignatureHmacWithSha256}, nil
}

func (hmacSigner) EstimateSize() uint { return sha256.Size }

func (s hmacSigner) ComputeSigValue(covered encoding.Wire) ([]byte, error) {
	mac := hmac.New(sha256.New, s.key)
	for _, buf := range covered {
		mac.Write(buf)
	}
	return mac.Sum(nil), nil
}

// hmacIntSigner is the Interest-signing variant, adding nonce/time/seqnum.
type hmacIntSigner struct {
	key   []byte
	timer ndn.Timer
	seq   uint64
}

func NewHmacIntSigner(key []byte, timer ndn.Timer) ndn.Signer {
	return &hmacIntSigner{key: key, timer: timer}
}

func (s *hmacIntSigner) SigInfo() (*ndn.SigConfig, error) {
	s.seq++
	return &ndn.SigConfig{
		Type:    ndn.SignatureHmacWithSha256,
		Nonce:   s.timer.Nonce(),
		SigTime: utils.IdPtr(s.timer.Now()),
		SeqNum:  utils.IdPtr(s.seq),
	}, nil
}

func (*hmacIntSigner) EstimateSize() uint { return sha256.Size }

func (s *hmacIntSigner) ComputeSigValue(covered encoding.Wire) ([]byte, error) {
	mac := hmac.New(sha256.New, s.key)
	for _, buf := range covered {
		mac.Write(buf)
	}
	return mac.Sum(nil), nil
}
