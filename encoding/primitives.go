package encoding

import (
	"encoding/binary"
	"io"
)

// TLNum is a TLV Type or Length number, encoded NDN-TLV style: values up to
// 0xfc fit in one byte; larger values are prefixed by 0xfd/0xfe/0xff and a
// 2/4/8 byte big-endian payload.
type TLNum uint64

func (v TLNum) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xfc:
		return 1
	case x <= 0xffff:
		return 3
	case x <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

func (v TLNum) EncodeInto(buf Buffer) int {
	switch x := uint64(v); {
	case x <= 0xfc:
		buf[0] = byte(x)
		return 1
	case x <= 0xffff:
		buf[0] = 0xfd
		binary.BigEndian.PutUint16(buf[1:], uint16(x))
		return 3
	case x <= 0xffffffff:
		buf[0] = 0xfe
		binary.BigEndian.PutUint32(buf[1:], uint32(x))
		return 5
	default:
		buf[0] = 0xff
		binary.BigEndian.PutUint64(buf[1:], x)
		return 9
	}
}

func (v TLNum) Bytes() []byte {
	b := make([]byte, v.EncodingLength())
	v.EncodeInto(b)
	return b
}

// ReadTLNum reads a TLNum from a byte-at-a-time reader.
func ReadTLNum(r io.ByteReader) (val TLNum, err error) {
	var x byte
	if x, err = r.ReadByte(); err != nil {
		return 0, err
	}
	l := 0
	switch {
	case x <= 0xfc:
		return TLNum(x), nil
	case x == 0xfd:
		l = 2
	case x == 0xfe:
		l = 4
	case x == 0xff:
		l = 8
	}
	for i := 0; i < l; i++ {
		if x, err = r.ReadByte(); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		val = (val << 8) | TLNum(x)
	}
	return val, nil
}

// Nat is a fixed-width TLV natural number (used for numeric name components).
type Nat uint64

func (v Nat) EncodingLength() int {
	switch x := uint64(v); {
	case x <= 0xff:
		return 1
	case x <= 0xffff:
		return 2
	case x <= 0xffffffff:
		return 4
	default:
		return 8
	}
}

func (v Nat) EncodeInto(buf Buffer) int {
	switch x := uint64(v); {
	case x <= 0xff:
		buf[0] = byte(x)
		return 1
	case x <= 0xffff:
		binary.BigEndian.PutUint16(buf, uint16(x))
		return 2
	case x <= 0xffffffff:
		binary.BigEndian.PutUint32(buf, uint32(x))
		return 4
	default:
		binary.BigEndian.PutUint64(buf, x)
		return 8
	}
}

func (v Nat) Bytes() []byte {
	b := make([]byte, v.EncodingLength())
	v.EncodeInto(b)
	return b
}

func ParseNat(buf Buffer) Nat {
	switch len(buf) {
	case 0:
		return 0
	case 1:
		return Nat(buf[0])
	case 2:
		return Nat(binary.BigEndian.Uint16(buf))
	case 4:
		return Nat(binary.BigEndian.Uint32(buf))
	default:
		return Nat(binary.BigEndian.Uint64(buf))
	}
}
