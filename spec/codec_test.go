package spec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/security"
	"github.com/ndn-go/face/spec"
)

func TestInterestEncodeParseRoundTrip(t *testing.T) {
	name, err := encoding.NameFromStr("/a/b/c")
	require.NoError(t, err)
	it := spec.NewInterest(name)
	it.InterestLifetime = 2500 * time.Millisecond
	it.Nonce = []byte{0x01, 0x02, 0x03, 0x04}

	wire := it.Encode()
	pkt, err := spec.ReadPacket(encoding.NewBufferReader(wire.Join()))
	require.NoError(t, err)
	require.NotNil(t, pkt.Interest)
	require.True(t, pkt.Interest.Name().Equal(name))
	require.Equal(t, it.InterestLifetime, pkt.Interest.InterestLifetime)
	require.Equal(t, it.Nonce, pkt.Interest.Nonce)
}

func TestInterestDefaultLifetime(t *testing.T) {
	name, _ := encoding.NameFromStr("/a")
	it := spec.NewInterest(name)
	require.Equal(t, 4000*time.Millisecond, it.Lifetime())
}

func TestInterestMatchesNameRespectsSuffixSelectors(t *testing.T) {
	name, _ := encoding.NameFromStr("/a/b")
	it := spec.NewInterest(name)
	min := 1
	it.MinSuffixComponents = &min

	require.True(t, it.MatchesName(mustSpecName(t, "/a/b/c")))
	require.False(t, it.MatchesName(mustSpecName(t, "/a/b")))
	require.False(t, it.MatchesName(mustSpecName(t, "/x")))
}

func TestDataEncodeParseRoundTrip(t *testing.T) {
	name, _ := encoding.NameFromStr("/a/b")
	d := spec.NewData(name, []byte("hello world"))
	wire, err := d.Encode(security.NewSha256Signer())
	require.NoError(t, err)

	pkt, err := spec.ReadPacket(encoding.NewBufferReader(wire.Join()))
	require.NoError(t, err)
	require.NotNil(t, pkt.Data)
	require.True(t, pkt.Data.Name().Equal(name))
	require.Equal(t, []byte("hello world"), pkt.Data.Content())
	require.NotNil(t, pkt.Data.Signature())
}

func TestForwardingEntryEncodeParseRoundTrip(t *testing.T) {
	prefix, _ := encoding.NameFromStr("/my/app")
	fe := &spec.ForwardingEntry{Action: "selfreg", Prefix: prefix, Flags: 3, Lifetime: 2147483647}
	wire := fe.Encode()

	pkt, err := spec.ReadPacket(encoding.NewBufferReader(wire.Join()))
	require.NoError(t, err)
	require.NotNil(t, pkt.ForwardingEntry)
	require.Equal(t, "selfreg", pkt.ForwardingEntry.Action)
	require.True(t, pkt.ForwardingEntry.Prefix.Equal(prefix))
	require.Equal(t, uint32(3), pkt.ForwardingEntry.Flags)
	require.Equal(t, uint32(2147483647), pkt.ForwardingEntry.Lifetime)
}

func TestReadPacketUnknownTopLevelType(t *testing.T) {
	// Type 0x99, length 2, two arbitrary body bytes.
	raw := []byte{0x99, 0x02, 0xaa, 0xbb}
	_, err := spec.ReadPacket(encoding.NewBufferReader(raw))
	require.ErrorIs(t, err, encoding.ErrUnknownElement)
}

func mustSpecName(t *testing.T, s string) encoding.Name {
	n, err := encoding.NameFromStr(s)
	require.NoError(t, err)
	return n
}
