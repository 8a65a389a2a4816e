package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndn-go/face/encoding"
)

func TestKeyCacheLookupLongestMatch(t *testing.T) {
	k := newKeyCache()
	now := time.Now()
	k.insert(mustName(t, "/a"), []byte("short"), now)
	k.insert(mustName(t, "/a/b"), []byte("long"), now)

	entry, ok := k.lookup(mustName(t, "/a/b/c"))
	require.True(t, ok)
	require.Equal(t, []byte("long"), entry.key)
}

func TestKeyCacheInsertIsIdempotentPerName(t *testing.T) {
	k := newKeyCache()
	now := time.Now()
	k.insert(mustName(t, "/a"), []byte("first"), now)
	k.insert(mustName(t, "/a"), []byte("second"), now)
	require.Len(t, k.entries, 1)
	require.Equal(t, []byte("first"), k.entries[0].key)
}

func TestKeyCacheFIFOEviction(t *testing.T) {
	k := newKeyCache()
	now := time.Now()
	for i := 0; i < maxKeyCacheEntries; i++ {
		name := mustName(t, "/k").Append(encoding.NewGenericComponent(fmt.Sprintf("%d", i)))
		k.insert(name, []byte("v"), now)
	}
	require.Len(t, k.entries, maxKeyCacheEntries)
	oldest := k.entries[0].keyName

	overflow := mustName(t, "/overflow")
	k.insert(overflow, []byte("v"), now)

	require.Len(t, k.entries, maxKeyCacheEntries)
	require.False(t, k.has(oldest))
	require.True(t, k.has(overflow))
}

