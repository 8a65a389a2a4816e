package spec

import (
	"time"

	"github.com/ndn-go/face/encoding"
)

const defaultInterestLifetime = 4000 * time.Millisecond

// Interest is the concrete wire-level Interest, implementing ndn.Interest.
// Selector semantics beyond prefix-matching are the codec layer's contract
// (not enforced here beyond MinSuffixComponents/MaxSuffixComponents, which
// are cheap and unambiguous).
type Interest struct {
	NameV                    encoding.Name
	MinSuffixComponents      *int
	MaxSuffixComponents      *int
	PublisherPublicKeyDigest []byte
	Exclude                  []encoding.Component
	ChildSelector            *int
	AnswerOriginKind         *int
	Scope                    *int
	InterestLifetime         time.Duration
	Nonce                    []byte
}

func NewInterest(name encoding.Name) *Interest {
	return &Interest{NameV: name, InterestLifetime: defaultInterestLifetime}
}

func (i *Interest) Name() encoding.Name { return i.NameV }

func (i *Interest) Lifetime() time.Duration {
	if i.InterestLifetime <= 0 {
		return defaultInterestLifetime
	}
	return i.InterestLifetime
}

// MatchesName reports whether the Interest's name is a prefix of n and the
// suffix-length selectors (if set) are satisfied.
func (i *Interest) MatchesName(n encoding.Name) bool {
	if !i.NameV.IsPrefixOf(n) {
		return false
	}
	suffixLen := len(n) - len(i.NameV)
	if i.MinSuffixComponents != nil && suffixLen < *i.MinSuffixComponents {
		return false
	}
	if i.MaxSuffixComponents != nil && suffixLen > *i.MaxSuffixComponents {
		return false
	}
	return true
}

func (i *Interest) encodingLength() int {
	nameBody := i.NameV.EncodingLength()
	nameLen := tlName.EncodingLength() + encoding.TLNum(nameBody).EncodingLength() + nameBody

	lifetimeBytes := encoding.Nat(i.Lifetime().Milliseconds()).Bytes()
	lifetimeLen := tlInterestLifetime.EncodingLength() + encoding.TLNum(len(lifetimeBytes)).EncodingLength() + len(lifetimeBytes)

	nonceLen := 0
	if len(i.Nonce) > 0 {
		nonceLen = tlNonce.EncodingLength() + encoding.TLNum(len(i.Nonce)).EncodingLength() + len(i.Nonce)
	}
	return nameLen + lifetimeLen + nonceLen
}

// Encode renders the Interest as a top-level Wire element.
func (i *Interest) Encode() encoding.Wire {
	body := i.encodingLength()
	total := TypeInterest.EncodingLength() + encoding.TLNum(body).EncodingLength() + body
	buf := make(encoding.Buffer, total)
	pos := TypeInterest.EncodeInto(buf)
	pos += encoding.TLNum(body).EncodeInto(buf[pos:])

	pos += tlName.EncodeInto(buf[pos:])
	nameBody := i.NameV.EncodingLength()
	pos += encoding.TLNum(nameBody).EncodeInto(buf[pos:])
	pos += i.NameV.EncodeInto(buf[pos:])

	lifetimeBytes := encoding.Nat(i.Lifetime().Milliseconds()).Bytes()
	pos += tlInterestLifetime.EncodeInto(buf[pos:])
	pos += encoding.TLNum(len(lifetimeBytes)).EncodeInto(buf[pos:])
	pos += copy(buf[pos:], lifetimeBytes)

	if len(i.Nonce) > 0 {
		pos += tlNonce.EncodeInto(buf[pos:])
		pos += encoding.TLNum(len(i.Nonce)).EncodeInto(buf[pos:])
		pos += copy(buf[pos:], i.Nonce)
	}
	return encoding.Wire{buf[:pos]}
}

// ParseInterest decodes an Interest body of the given length, with r
// positioned right after the top-level Type/Length header.
func ParseInterest(r encoding.ParseReader, bodyLen int) (*Interest, error) {
	end := r.Pos() + bodyLen
	it := &Interest{InterestLifetime: defaultInterestLifetime}
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
			it.NameV = name
		case tlInterestLifetime:
			w, err := r.ReadWire(int(l))
			if err != nil {
				return nil, err
			}
			it.InterestLifetime = time.Duration(encoding.ParseNat(w.Join())) * time.Millisecond
		case tlNonce:
			w, err := r.ReadWire(int(l))
			if err != nil {
				return nil, err
			}
			it.Nonce = w.Join()
		default:
			if err := r.Skip(int(l)); err != nil {
				return nil, err
			}
		}
	}
	return it, nil
}
