package spec

import "github.com/ndn-go/face/encoding"

// ForwardingEntry is the self-registration payload: an action name, a
// target prefix, a flag bitmask, and a lifetime in seconds (2147483647 for
// "forever", matching the self-registration protocol's literal constant).
type ForwardingEntry struct {
	Action   string
	Prefix   encoding.Name
	Flags    uint32
	Lifetime uint32
}

const (
	tlFwAction   encoding.TLNum = 0x82
	tlFwPrefix   encoding.TLNum = 0x83
	tlFwFlags    encoding.TLNum = 0x84
	tlFwLifetime encoding.TLNum = 0x85
)

func (f *ForwardingEntry) encodingLength() int {
	actionLen := tlFwAction.EncodingLength() + encoding.TLNum(len(f.Action)).EncodingLength() + len(f.Action)
	pb := f.Prefix.EncodingLength()
	prefixLen := tlFwPrefix.EncodingLength() + encoding.TLNum(pb).EncodingLength() + pb
	flagsBytes := encoding.Nat(f.Flags).Bytes()
	flagsLen := tlFwFlags.EncodingLength() + encoding.TLNum(len(flagsBytes)).EncodingLength() + len(flagsBytes)
	lifetimeBytes := encoding.Nat(f.Lifetime).Bytes()
	lifetimeLen := tlFwLifetime.EncodingLength() + encoding.TLNum(len(lifetimeBytes)).EncodingLength() + len(lifetimeBytes)
	return actionLen + prefixLen + flagsLen + lifetimeLen
}

// Encode renders the ForwardingEntry as a top-level Wire element. It is
// carried as the Content of a signed Data packet, never sent on its own.
func (f *ForwardingEntry) Encode() encoding.Wire {
	body := f.encodingLength()
	total := TypeForwardingEntry.EncodingLength() + encoding.TLNum(body).EncodingLength() + body
	buf := make(encoding.Buffer, total)
	pos := TypeForwardingEntry.EncodeInto(buf)
	pos += encoding.TLNum(body).EncodeInto(buf[pos:])

	pos += tlFwAction.EncodeInto(buf[pos:])
	pos += encoding.TLNum(len(f.Action)).EncodeInto(buf[pos:])
	pos += copy(buf[pos:], f.Action)

	pb := f.Prefix.EncodingLength()
	pos += tlFwPrefix.EncodeInto(buf[pos:])
	pos += encoding.TLNum(pb).EncodeInto(buf[pos:])
	pos += f.Prefix.EncodeInto(buf[pos:])

	flagsBytes := encoding.Nat(f.Flags).Bytes()
	pos += tlFwFlags.EncodeInto(buf[pos:])
	pos += encoding.TLNum(len(flagsBytes)).EncodeInto(buf[pos:])
	pos += copy(buf[pos:], flagsBytes)

	lifetimeBytes := encoding.Nat(f.Lifetime).Bytes()
	pos += tlFwLifetime.EncodeInto(buf[pos:])
	pos += encoding.TLNum(len(lifetimeBytes)).EncodeInto(buf[pos:])
	pos += copy(buf[pos:], lifetimeBytes)

	return encoding.Wire{buf[:pos]}
}

func ParseForwardingEntry(r encoding.ParseReader, bodyLen int) (*ForwardingEntry, error) {
	end := r.Pos() + bodyLen
	fe := &ForwardingEntry{}
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
		case tlFwAction:
			w, err := r.ReadWire(int(l))
			if err != nil {
				return nil, err
			}
			fe.Action = string(w.Join())
		case tlFwPrefix:
			name, err := encoding.ReadName(r, int(l))
			if err != nil {
				return nil, err
			}
			fe.Prefix = name
		case tlFwFlags:
			w, err := r.ReadWire(int(l))
			if err != nil {
				return nil, err
			}
			fe.Flags = uint32(encoding.ParseNat(w.Join()))
		case tlFwLifetime:
			w, err := r.ReadWire(int(l))
			if err != nil {
				return nil, err
			}
			fe.Lifetime = uint32(encoding.ParseNat(w.Join()))
		default:
			if err := r.Skip(int(l)); err != nil {
				return nil, err
			}
		}
	}
	return fe, nil
}
