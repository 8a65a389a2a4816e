package spec

import "github.com/ndn-go/face/encoding"

// Packet is the result of decoding one top-level element: exactly one of
// the three fields is non-nil.
type Packet struct {
	Interest         *Interest
	Data             *Data
	ForwardingEntry  *ForwardingEntry
}

// ReadPacket decodes one top-level TLV element from r, dispatching on its
// type tag. Unrecognized top-level tags return encoding.ErrUnknownElement
// after skipping the element's body, so callers can discard-and-log.
func ReadPacket(r encoding.ParseReader) (*Packet, error) {
	typ, err := encoding.ReadTLNum(r)
	if err != nil {
		return nil, err
	}
	l, err := encoding.ReadTLNum(r)
	if err != nil {
		return nil, err
	}
	switch typ {
	case TypeInterest:
		it, err := ParseInterest(r, int(l))
		if err != nil {
			return nil, err
		}
		return &Packet{Interest: it}, nil
	case TypeData:
		d, err := ParseData(r, int(l))
		if err != nil {
			return nil, err
		}
		return &Packet{Data: d}, nil
	case TypeForwardingEntry:
		fe, err := ParseForwardingEntry(r, int(l))
		if err != nil {
			return nil, err
		}
		return &Packet{ForwardingEntry: fe}, nil
	default:
		if err := r.Skip(int(l)); err != nil {
			return nil, err
		}
		return nil, encoding.ErrUnknownElement
	}
}
