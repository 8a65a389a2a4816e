// Package security provides Data/Interest signers and the corresponding
// key-based signature validators, narrowed to the algorithms this repo's
// verifier actually exercises.
package security

import (
	"crypto/sha256"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/utils"
)

// sha256Signer produces a bare digest signature, with no key locator — used
// as the default signer of the self-registration Data envelope when the
// Face has no Signer configured, and wherever only integrity, not
// authentication, matters.
type sha256Signer struct{}

func NewSha256Signer() ndn.Signer { return sha256Signer{} }

func (sha256Signer) SigInfo() (*ndn.SigConfig, error) {
	return &ndn.SigConfig{Type: ndn.SignatureDigestSha256}, nil
}

func (sha256Signer) EstimateSize() uint { return sha256.Size }

func (sha256Signer) ComputeSigValue(covered encoding.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		if _, err := h.Write(buf); err != nil {
			return nil, err
		}
	}
	return h.Sum(nil), nil
}

// sha256IntSigner is the same digest algorithm with Interest-style metadata
// (nonce, time, sequence number). Nothing in this repository signs
// Interests, so no caller uses it.
type sha256IntSigner struct {
	timer ndn.Timer
	seq   uint64
}

func NewSha256IntSigner(timer ndn.Timer) ndn.Signer {
	return &sha256IntSigner{timer: timer}
}

func (s *sha256IntSigner) SigInfo() (*ndn.SigConfig, error) {
	s.seq++
	return &ndn.SigConfig{
		Type:    ndn.SignatureDigestSha256,
		Nonce:   s.timer.Nonce(),
		SigTime: utils.IdPtr(s.timer.Now()),
		SeqNum:  utils.IdPtr(s.seq),
	}, nil
}

func (*sha256IntSigner) EstimateSize() uint { return sha256.Size }

func (*sha256IntSigner) ComputeSigValue(covered encoding.Wire) ([]byte, error) {
	return sha256Signer{}.ComputeSigValue(covered)
}
