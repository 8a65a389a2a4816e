package security

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
	"github.com/ndn-go/face/utils"
)

// eccSigner signs Data or Interests with an ECDSA private key, carrying a
// KeyName locator so a verifier can fetch the matching public key.
type eccSigner struct {
	timer ndn.Timer
	seq   uint64

	keyLocatorName encoding.Name
	key            *ecdsa.PrivateKey
	keyLen         uint
	forInt         bool
}

func (s *eccSigner) SigInfo() (*ndn.SigConfig, error) {
	cfg := &ndn.SigConfig{
		Type:    ndn.SignatureSha256WithEcdsa,
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

func (s *eccSigner) EstimateSize() uint { return s.keyLen }

func (s *eccSigner) ComputeSigValue(covered encoding.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return ecdsa.SignASN1(rand.Reader, s.key, h.Sum(nil))
}

// NewEccSigner creates a signer using an ECDSA key. forInt controls whether
// Interest-style metadata (nonce, time, sequence number) is added.
func NewEccSigner(timer ndn.Timer, forInt bool, key *ecdsa.PrivateKey, keyLocatorName encoding.Name) ndn.Signer {
	keyLen := (uint(key.Curve.Params().BitSize*2+7) / 8)
	keyLen += keyLen%2 + 8
	return &eccSigner{
		timer:          timer,
		keyLocatorName: keyLocatorName,
		key:            key,
		keyLen:         keyLen,
		forInt:         forInt,
	}
}
