package encoding

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Name component type numbers, NDN-TLV assignments.
const (
	TypeInvalidComponent              TLNum = 0x00
	TypeImplicitSha256DigestComponent TLNum = 0x01
	TypeGenericNameComponent          TLNum = 0x08
	TypeKeywordNameComponent          TLNum = 0x20
	TypeVersionNameComponent          TLNum = 0x36
	TypeSequenceNumNameComponent      TLNum = 0x3a
)

// Component is one element of a Name: a TLV type tag plus an opaque value.
type Component struct {
	Typ TLNum
	Val []byte
}

func NewGenericComponent(s string) Component {
	return Component{Typ: TypeGenericNameComponent, Val: []byte(s)}
}

func NewNumberComponent(typ TLNum, val uint64) Component {
	return Component{Typ: typ, Val: Nat(val).Bytes()}
}

func (c Component) Length() int { return len(c.Val) }

func (c Component) Equal(rhs Component) bool {
	return c.Typ == rhs.Typ && bytes.Equal(c.Val, rhs.Val)
}

func (c Component) Compare(rhs Component) int {
	if c.Typ != rhs.Typ {
		if c.Typ < rhs.Typ {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.Val, rhs.Val)
}

func isLegalCompText(b byte) bool {
	return b < 0x80 && (unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b)) || b == '-' || b == '_' || b == '.' || b == '~')
}

// String renders a component the way ndn-cxx does for logging: generic
// components print as their text value, percent-escaping anything unsafe;
// other types are prefixed with their type number.
func (c Component) String() string {
	prefix := ""
	if c.Typ != TypeGenericNameComponent {
		prefix = strconv.FormatUint(uint64(c.Typ), 10) + "="
	}
	var b strings.Builder
	for _, ch := range c.Val {
		if isLegalCompText(ch) {
			b.WriteByte(ch)
		} else {
			fmt.Fprintf(&b, "%%%02X", ch)
		}
	}
	return prefix + b.String()
}

func (c Component) EncodingLength() int {
	l := len(c.Val)
	return c.Typ.EncodingLength() + TLNum(l).EncodingLength() + l
}

func (c Component) EncodeInto(buf Buffer) int {
	p1 := c.Typ.EncodeInto(buf)
	p2 := TLNum(len(c.Val)).EncodeInto(buf[p1:])
	copy(buf[p1+p2:], c.Val)
	return p1 + p2 + len(c.Val)
}

func (c Component) Bytes() []byte {
	b := make([]byte, c.EncodingLength())
	c.EncodeInto(b)
	return b
}

func ReadComponent(r ParseReader) (Component, error) {
	typ, err := ReadTLNum(r)
	if err != nil {
		return Component{}, err
	}
	l, err := ReadTLNum(r)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Component{}, err
	}
	val, err := r.ReadWire(int(l))
	if err != nil {
		return Component{}, err
	}
	return Component{Typ: typ, Val: val.Join()}, nil
}

// Name is an ordered sequence of opaque components. Names are value types:
// none of the methods below mutate the receiver's backing array in place
// (Append/GetPrefix always return a fresh slice header).
type Name []Component

func NameFromStr(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "/" {
		return Name{}, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, ErrFormat{"name must start with '/': " + s}
	}
	parts := strings.Split(s[1:], "/")
	name := make(Name, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		typ := TypeGenericNameComponent
		val := p
		if idx := strings.IndexByte(p, '='); idx >= 0 {
			if n, err := strconv.ParseUint(p[:idx], 10, 64); err == nil {
				typ = TLNum(n)
				val = p[idx+1:]
			}
		}
		decoded, err := unescapeComponent(val)
		if err != nil {
			return nil, err
		}
		name = append(name, Component{Typ: typ, Val: decoded})
	}
	return name, nil
}

func unescapeComponent(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' {
			if i+3 > len(s) {
				return nil, ErrFormat{"invalid percent-escape in component: " + s}
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, ErrFormat{"invalid percent-escape in component: " + s}
			}
			out = append(out, byte(v))
			i += 3
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return out, nil
}

func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, c := range n {
		b.WriteByte('/')
		b.WriteString(c.String())
	}
	return b.String()
}

// Append returns a new Name with c appended, without aliasing n's backing array.
func (n Name) Append(c Component) Name {
	out := make(Name, len(n)+1)
	copy(out, n)
	out[len(n)] = c
	return out
}

// GetPrefix returns the first k components as a new Name.
func (n Name) GetPrefix(k int) Name {
	if k > len(n) {
		k = len(n)
	}
	out := make(Name, k)
	copy(out, n[:k])
	return out
}

func (n Name) Equal(rhs Name) bool {
	if len(n) != len(rhs) {
		return false
	}
	for i := range n {
		if !n[i].Equal(rhs[i]) {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether n is a prefix of (or equal to) other.
func (n Name) IsPrefixOf(other Name) bool {
	if len(n) > len(other) {
		return false
	}
	for i := range n {
		if !n[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Matches reports whether n is a prefix of or equal to other.
func (n Name) Matches(other Name) bool { return n.IsPrefixOf(other) }

func (n Name) EncodingLength() int {
	l := 0
	for _, c := range n {
		l += c.EncodingLength()
	}
	return l
}

func (n Name) EncodeInto(buf Buffer) int {
	pos := 0
	for _, c := range n {
		pos += c.EncodeInto(buf[pos:])
	}
	return pos
}

func (n Name) Bytes() []byte {
	b := make([]byte, n.EncodingLength())
	n.EncodeInto(b)
	return b
}

func ReadName(r ParseReader, totalLen int) (Name, error) {
	end := r.Pos() + totalLen
	name := Name{}
	for r.Pos() < end {
		c, err := ReadComponent(r)
		if err != nil {
			return nil, err
		}
		name = append(name, c)
	}
	return name, nil
}
