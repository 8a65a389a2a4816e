package security

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/utils"
)

// rsaSigner signs Data or Interests with an RSA private key, carrying a
// KeyName locator so a verifier can fetch the matching public key.
type rsaSigner struct {
	timer ndn.Timer
	seq   uint64

	keyLocatorName encoding.Name
	key            *rsa.PrivateKey
	keyLen         uint
	forInt         bool
}

func (s *rsaSigner) SigInfo() (*ndn.SigConfig, error) {
	cfg := &ndn.SigConfig{
		Type:    ndn.SignatureSha256WithRsa,
		KeyName: s.keyLocatorName,
	}
	if s.forInt {
		s.seq++
		cfg.Nonce = s.timer.Nonce()
		cfg.SigTime = utils.IdPtr(s.timer.Now())
		cfg.SeqNum = utils.IdPtr(s.seq)
	}
	return cfg, nil
}

func (s *rsaSigner) EstimateSize() uint { return s.keyLen }

func (s *rsaSigner) ComputeSigValue(covered encoding.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return rsa.SignPKCS1v15(nil, s.key, crypto.SHA256, h.Sum(nil))
}

// NewRsaSigner creates a signer using an RSA private key. forInt controls
// whether Interest-style metadata (nonce, time, sequence number) is added.
func NewRsaSigner(timer ndn.Timer, forInt bool, key *rsa.PrivateKey, keyLocatorName encoding.Name) ndn.Signer {
	return &rsaSigner{
		timer:          timer,
		keyLocatorName: keyLocatorName,
		key:            key,
		keyLen:         uint(key.Size()),
		forInt:         forInt,
	}
}
