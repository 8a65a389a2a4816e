package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndn-go/face/encoding"
)

func TestNameFromStrRoundTrip(t *testing.T) {
	n, err := encoding.NameFromStr("/foo/bar/baz")
	require.NoError(t, err)
	require.Equal(t, 3, len(n))
	require.Equal(t, "/foo/bar/baz", n.String())
}

func TestNameEmptyIsRoot(t *testing.T) {
	n, err := encoding.NameFromStr("/")
	require.NoError(t, err)
	require.Equal(t, 0, len(n))
	require.Equal(t, "/", n.String())
}

func TestNameIsPrefixOf(t *testing.T) {
	prefix, _ := encoding.NameFromStr("/foo/bar")
	full, _ := encoding.NameFromStr("/foo/bar/baz")
	other, _ := encoding.NameFromStr("/foo/qux")

	require.True(t, prefix.IsPrefixOf(full))
	require.True(t, prefix.Matches(full))
	require.True(t, prefix.IsPrefixOf(prefix))
	require.False(t, prefix.IsPrefixOf(other))
	require.False(t, full.IsPrefixOf(prefix))
}

// Append(c).GetPrefix(n-1) equals GetPrefix(n-1) of the same underlying
// name.
func TestAppendThenGetPrefixIsUnchanged(t *testing.T) {
	base, _ := encoding.NameFromStr("/foo/bar")
	appended := base.Append(encoding.NewGenericComponent("baz"))
	require.True(t, appended.GetPrefix(len(base)).Equal(base.GetPrefix(len(base))))
}

func TestComponentEncodeDecodeRoundTrip(t *testing.T) {
	c := encoding.NewGenericComponent("hello")
	encoded := c.Bytes()
	r := encoding.NewBufferReader(encoded)
	decoded, err := encoding.ReadComponent(r)
	require.NoError(t, err)
	require.True(t, c.Equal(decoded))
}

func TestNameEncodeDecodeRoundTrip(t *testing.T) {
	n, _ := encoding.NameFromStr("/a/b/c")
	encoded := n.Bytes()
	r := encoding.NewBufferReader(encoded)
	decoded, err := encoding.ReadName(r, len(encoded))
	require.NoError(t, err)
	require.True(t, n.Equal(decoded))
}

func TestTLNumEncodeDecodeRoundTrip(t *testing.T) {
	for _, v := range []encoding.TLNum{0, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000} {
		b := v.Bytes()
		r := encoding.NewBufferReader(b)
		got, err := encoding.ReadTLNum(r)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}
