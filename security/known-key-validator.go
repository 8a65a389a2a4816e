package security

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
)

// Sha256Validate verifies a bare sha256 digest signature.
func Sha256Validate(sigCovered encoding.Wire, sig ndn.Signature) bool {
	if sig.SigType() != ndn.SignatureDigestSha256 {
		return false
	}
	h := sha256.New()
	for _, buf := range sigCovered {
		h.Write(buf)
	}
	return bytes.Equal(h.Sum(nil), sig.SigValue())
}

// HmacValidate verifies the signature with a known HMAC shared key.
func HmacValidate(sigCovered encoding.Wire, sig ndn.Signature, key []byte) bool {
	if sig.SigType() != ndn.SignatureHmacWithSha256 {
		return false
	}
	return CheckHmacSig(sigCovered, sig.SigValue(), key)
}

// EcdsaValidate verifies the signature with a known ECDSA public key. The
// key is expected already parsed (e.g. via x509.ParsePKIXPublicKey), same
// convention as ndn-cxx's PIB storage.
func EcdsaValidate(sigCovered encoding.Wire, sig ndn.Signature, pubKey *ecdsa.PublicKey) bool {
	if sig.SigType() != ndn.SignatureSha256WithEcdsa {
		return false
	}
	h := sha256.New()
	for _, buf := range sigCovered {
		h.Write(buf)
	}
	return ecdsa.VerifyASN1(pubKey, h.Sum(nil), sig.SigValue())
}

// RsaValidate verifies the signature with a known RSA public key.
func RsaValidate(sigCovered encoding.Wire, sig ndn.Signature, pubKey *rsa.PublicKey) bool {
	if sig.SigType() != ndn.SignatureSha256WithRsa {
		return false
	}
	h := sha256.New()
	for _, buf := range sigCovered {
		h.Write(buf)
	}
	return rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, h.Sum(nil), sig.SigValue()) == nil
}

// EddsaValidate verifies the signature with a known ed25519 public key.
func EddsaValidate(sigCovered encoding.Wire, sig ndn.Signature, pubKey ed25519.PublicKey) bool {
	if sig.SigType() != ndn.SignatureEd25519 {
		return false
	}
	return ed25519.Verify(pubKey, sigCovered.Join(), sig.SigValue())
}

// ValidateByType dispatches to the right validator given a parsed public
// key of unknown concrete type, the shape the engine's verifier needs
// after x509-parsing a fetched key.
func ValidateByType(sigCovered encoding.Wire, sig ndn.Signature, key any) bool {
	switch k := key.(type) {
	case *ecdsa.PublicKey:
		return EcdsaValidate(sigCovered, sig, k)
	case *rsa.PublicKey:
		return RsaValidate(sigCovered, sig, k)
	case ed25519.PublicKey:
		return EddsaValidate(sigCovered, sig, k)
	default:
		return false
	}
}
