package security

import (
	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
)

// emptySigner gives an empty signature value. Used by tests that exercise
// the Face's dispatch and PIT/CST paths without caring about verification.
type emptySigner struct{}

func (emptySigner) SigInfo() (*ndn.SigConfig, error) {
	return &ndn.SigConfig{Type: ndn.SignatureEmptyTest}, nil
}

func (emptySigner) EstimateSize() uint { return 0 }

func (emptySigner) ComputeSigValue(covered encoding.Wire) ([]byte, error) {
	return []byte{}, nil
}

// NewEmptySigner creates a signer for test use only.
func NewEmptySigner() ndn.Signer { return emptySigner{} }
