package spec

import (
	"time"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
)

// Data is the concrete wire-level Data packet, implementing ndn.Data.
type Data struct {
	NameV    encoding.Name
	ContentV []byte
	Info     SignedInfo
	Sig      *sig

	// signedPortion caches the exact bytes covered by the signature, set by
	// ParseData on decode or by Encode after signing.
	signedPortion encoding.Wire
}

func (d *Data) Name() encoding.Name          { return d.NameV }
func (d *Data) Content() []byte              { return d.ContentV }
func (d *Data) Signature() ndn.Signature     { return d.Sig }
func (d *Data) SignedPortion() encoding.Wire { return d.signedPortion }

func NewData(name encoding.Name, content []byte) *Data {
	return &Data{NameV: name, ContentV: content}
}

func (d *Data) signedInfoLength() int {
	l := 0
	switch d.Info.Locator.Kind {
	case KeyLocatorName:
		nb := d.Info.Locator.KeyName.EncodingLength()
		knLen := tlKeyName.EncodingLength() + encoding.TLNum(nb).EncodingLength() + nb
		l += tlKeyLocator.EncodingLength() + encoding.TLNum(knLen).EncodingLength() + knLen
	case KeyLocatorKey:
		kb := len(d.Info.Locator.PublicKey)
		kLen := tlKeyBytes.EncodingLength() + encoding.TLNum(kb).EncodingLength() + kb
		l += tlKeyLocator.EncodingLength() + encoding.TLNum(kLen).EncodingLength() + kLen
	case KeyLocatorCert:
		cb := len(d.Info.Locator.Certificate)
		cLen := tlCertificate.EncodingLength() + encoding.TLNum(cb).EncodingLength() + cb
		l += tlKeyLocator.EncodingLength() + encoding.TLNum(cLen).EncodingLength() + cLen
	}
	digestBytes := encoding.Nat(uint64(d.Info.DigestAlgo)).Bytes()
	l += tlDigestAlgo.EncodingLength() + encoding.TLNum(len(digestBytes)).EncodingLength() + len(digestBytes)
	return l
}

func (d *Data) encodeSignedInfoInto(buf encoding.Buffer) int {
	pos := 0
	switch d.Info.Locator.Kind {
	case KeyLocatorName:
		nb := d.Info.Locator.KeyName.EncodingLength()
		knLen := tlKeyName.EncodingLength() + encoding.TLNum(nb).EncodingLength() + nb
		pos += tlKeyLocator.EncodeInto(buf[pos:])
		pos += encoding.TLNum(knLen).EncodeInto(buf[pos:])
		pos += tlKeyName.EncodeInto(buf[pos:])
		pos += encoding.TLNum(nb).EncodeInto(buf[pos:])
		pos += d.Info.Locator.KeyName.EncodeInto(buf[pos:])
	case KeyLocatorKey:
		kb := len(d.Info.Locator.PublicKey)
		kLen := tlKeyBytes.EncodingLength() + encoding.TLNum(kb).EncodingLength() + kb
		pos += tlKeyLocator.EncodeInto(buf[pos:])
		pos += encoding.TLNum(kLen).EncodeInto(buf[pos:])
		pos += tlKeyBytes.EncodeInto(buf[pos:])
		pos += encoding.TLNum(kb).EncodeInto(buf[pos:])
		pos += copy(buf[pos:], d.Info.Locator.PublicKey)
	case KeyLocatorCert:
		cb := len(d.Info.Locator.Certificate)
		cLen := tlCertificate.EncodingLength() + encoding.TLNum(cb).EncodingLength() + cb
		pos += tlKeyLocator.EncodeInto(buf[pos:])
		pos += encoding.TLNum(cLen).EncodeInto(buf[pos:])
		pos += tlCertificate.EncodeInto(buf[pos:])
		pos += encoding.TLNum(cb).EncodeInto(buf[pos:])
		pos += copy(buf[pos:], d.Info.Locator.Certificate)
	}
	digestBytes := encoding.Nat(uint64(d.Info.DigestAlgo)).Bytes()
	pos += tlDigestAlgo.EncodeInto(buf[pos:])
	pos += encoding.TLNum(len(digestBytes)).EncodeInto(buf[pos:])
	pos += copy(buf[pos:], digestBytes)
	return pos
}

// Encode signs and renders the Data as a top-level Wire element. The
// signed portion (Name + SignedInfo + Content) is built first so that
// signer.ComputeSigValue sees exactly the bytes a verifier will re-derive.
func (d *Data) Encode(signer ndn.Signer) (encoding.Wire, error) {
	cfg, err := signer.SigInfo()
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		if len(cfg.KeyName) > 0 {
			d.Info.Locator = KeyLocator{Kind: KeyLocatorName, KeyName: cfg.KeyName}
		}
		d.Info.DigestAlgo = cfg.Type
	}

	nameBody := d.NameV.EncodingLength()
	nameLen := tlName.EncodingLength() + encoding.TLNum(nameBody).EncodingLength() + nameBody

	infoBody := d.signedInfoLength()
	infoLen := tlSignedInfo.EncodingLength() + encoding.TLNum(infoBody).EncodingLength() + infoBody

	contentLen := tlContent.EncodingLength() + encoding.TLNum(len(d.ContentV)).EncodingLength() + len(d.ContentV)

	coveredLen := nameLen + infoLen + contentLen
	covered := make(encoding.Buffer, coveredLen)
	pos := 0
	pos += tlName.EncodeInto(covered[pos:])
	pos += encoding.TLNum(nameBody).EncodeInto(covered[pos:])
	pos += d.NameV.EncodeInto(covered[pos:])

	pos += tlSignedInfo.EncodeInto(covered[pos:])
	pos += encoding.TLNum(infoBody).EncodeInto(covered[pos:])
	pos += d.encodeSignedInfoInto(covered[pos:])

	pos += tlContent.EncodeInto(covered[pos:])
	pos += encoding.TLNum(len(d.ContentV)).EncodeInto(covered[pos:])
	pos += copy(covered[pos:], d.ContentV)

	d.signedPortion = encoding.Wire{covered}

	sigValue, err := signer.ComputeSigValue(d.signedPortion)
	if err != nil {
		return nil, err
	}
	sigBytesLen := tlSignatureBits.EncodingLength() + encoding.TLNum(len(sigValue)).EncodingLength() + len(sigValue)
	sigElemLen := tlSignature.EncodingLength() + encoding.TLNum(sigBytesLen).EncodingLength() + sigBytesLen

	total := coveredLen + sigElemLen
	body := total
	totalLen := TypeData.EncodingLength() + encoding.TLNum(body).EncodingLength() + body
	buf := make(encoding.Buffer, totalLen)
	wpos := TypeData.EncodeInto(buf)
	wpos += encoding.TLNum(body).EncodeInto(buf[wpos:])
	wpos += copy(buf[wpos:], covered)

	wpos += tlSignature.EncodeInto(buf[wpos:])
	wpos += encoding.TLNum(sigBytesLen).EncodeInto(buf[wpos:])
	wpos += tlSignatureBits.EncodeInto(buf[wpos:])
	wpos += encoding.TLNum(len(sigValue)).EncodeInto(buf[wpos:])
	wpos += copy(buf[wpos:], sigValue)

	d.Sig = &sig{typ: cfg.Type, keyName: cfg.KeyName, value: sigValue}
	// Re-point signedPortion into the final buffer so callers that hold on
	// to the returned Wire and the cached SignedPortion see the same bytes.
	d.signedPortion = encoding.Wire{buf[TypeData.EncodingLength()+encoding.TLNum(body).EncodingLength() : TypeData.EncodingLength()+encoding.TLNum(body).EncodingLength()+coveredLen]}
	return encoding.Wire{buf[:wpos]}, nil
}

// ParseData decodes a Data body of the given length, with r positioned
// right after the top-level Type/Length header.
func ParseData(r encoding.ParseReader, bodyLen int) (*Data, error) {
	start := r.Pos()
	end := start + bodyLen
	d := &Data{}
	coveredEnd := end
	for r.Pos() < end {
		typ, err := encoding.ReadTLNum(r)
		if err != nil {
			return nil, err
		}
		l, err := encoding.ReadTLNum(r)
		if err != nil {
			return nil, err
		}
		switch typ {
		case tlName:
			name, err := encoding.ReadName(r, int(l))
			if err != nil {
				return nil, err
			}
			d.NameV = name
		case tlSignedInfo:
			info, err := parseSignedInfo(r, int(l))
			if err != nil {
				return nil, err
			}
			d.Info = info
		case tlContent:
			w, err := r.ReadWire(int(l))
			if err != nil {
				return nil, err
			}
			d.ContentV = w.Join()
			coveredEnd = r.Pos()
		case tlSignature:
			s, err := parseSignature(r, int(l))
			if err != nil {
				return nil, err
			}
			d.Sig = s
		default:
			if err := r.Skip(int(l)); err != nil {
				return nil, err
			}
		}
	}
	if d.Sig != nil {
		d.Sig.typ = d.Info.DigestAlgo
	}
	d.signedPortion = r.Range(start, coveredEnd)
	return d, nil
}

func parseSignedInfo(r encoding.ParseReader, l int) (SignedInfo, error) {
	end := r.Pos() + l
	info := SignedInfo{}
	for r.Pos() < end {
		typ, err := encoding.ReadTLNum(r)
		if err != nil {
			return info, err
		}
		fl, err := encoding.ReadTLNum(r)
		if err != nil {
			return info, err
		}
		switch typ {
		case tlKeyLocator:
			loc, err := parseKeyLocator(r, int(fl))
			if err != nil {
				return info, err
			}
			info.Locator = loc
		case tlDigestAlgo:
			w, err := r.ReadWire(int(fl))
			if err != nil {
				return info, err
			}
			info.DigestAlgo = ndn.SigType(encoding.ParseNat(w.Join()))
		case tlTimestamp:
			w, err := r.ReadWire(int(fl))
			if err != nil {
				return info, err
			}
			ms := int64(encoding.ParseNat(w.Join()))
			t := time.UnixMilli(ms)
			info.Timestamp = t
		default:
			if err := r.Skip(int(fl)); err != nil {
				return info, err
			}
		}
	}
	return info, nil
}

func parseKeyLocator(r encoding.ParseReader, l int) (KeyLocator, error) {
	end := r.Pos() + l
	loc := KeyLocator{}
	for r.Pos() < end {
		typ, err := encoding.ReadTLNum(r)
		if err != nil {
			return loc, err
		}
		fl, err := encoding.ReadTLNum(r)
		if err != nil {
			return loc, err
		}
		switch typ {
		case tlKeyName:
			name, err := encoding.ReadName(r, int(fl))
			if err != nil {
				return loc, err
			}
			loc.Kind = KeyLocatorName
			loc.KeyName = name
		case tlKeyBytes:
			w, err := r.ReadWire(int(fl))
			if err != nil {
				return loc, err
			}
			loc.Kind = KeyLocatorKey
			loc.PublicKey = w.Join()
		case tlCertificate:
			w, err := r.ReadWire(int(fl))
			if err != nil {
				return loc, err
			}
			loc.Kind = KeyLocatorCert
			loc.Certificate = w.Join()
		default:
			if err := r.Skip(int(fl)); err != nil {
				return loc, err
			}
		}
	}
	return loc, nil
}

func parseSignature(r encoding.ParseReader, l int) (*sig, error) {
	end := r.Pos() + l
	s := &sig{}
	for r.Pos() < end {
		typ, err := encoding.ReadTLNum(r)
		if err != nil {
			return nil, err
		}
		fl, err := encoding.ReadTLNum(r)
		if err != nil {
			return nil, err
		}
		switch typ {
		case tlSignatureBits:
			w, err := r.ReadWire(int(fl))
			if err != nil {
				return nil, err
			}
			s.value = w.Join()
		case tlWitness:
			w, err := r.ReadWire(int(fl))
			if err != nil {
				return nil, err
			}
			s.witness = w.Join()
		default:
			if err := r.Skip(int(fl)); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
