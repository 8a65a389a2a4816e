package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndn-go/face/ndn"
)

func TestCstLookupUsesFirstMatchNotLongest(t *testing.T) {
	c := newCst()
	shortSink := func(ndn.InterestHandlerArgs) (ndn.InterestAction, ndn.Data) { return ndn.InterestActionNone, nil }
	longSink := func(ndn.InterestHandlerArgs) (ndn.InterestAction, ndn.Data) { return ndn.InterestActionNone, nil }

	c.register(mustName(t, "/a"), shortSink, 0)
	c.register(mustName(t, "/a/b"), longSink, 0)

	entry, ok := c.lookup(mustName(t, "/a/b/c"))
	require.True(t, ok)
	require.True(t, entry.prefix.Equal(mustName(t, "/a")))
}

func TestCstLookupNoMatch(t *testing.T) {
	c := newCst()
	c.register(mustName(t, "/x"), func(ndn.InterestHandlerArgs) (ndn.InterestAction, ndn.Data) { return ndn.InterestActionNone, nil }, 0)
	_, ok := c.lookup(mustName(t, "/y"))
	require.False(t, ok)
}

func TestCstClear(t *testing.T) {
	c := newCst()
	c.register(mustName(t, "/x"), func(ndn.InterestHandlerArgs) (ndn.InterestAction, ndn.Data) { return ndn.InterestActionNone, nil }, 0)
	c.clear()
	_, ok := c.lookup(mustName(t, "/x"))
	require.False(t, ok)
}
