package engine

import (
	"time"

	"github.com/cespare/xxhash"

	"github.com/ndn-go/face/encoding"
)

// maxKeyCacheEntries bounds the key cache with FIFO eviction.
const maxKeyCacheEntries = 256

// keyCacheEntry is one cached, already-verified public key.
type keyCacheEntry struct {
	keyName   encoding.Name
	key       []byte
	createdAt time.Time
}

// keyCache is a small, name-indexed cache of verified public keys with
// longest-match lookup. An xxhash-keyed set of known key-name URIs lets
// insert skip a name that is already cached in O(1); lookup does not
// consult it and always runs the linear LongestMatch scan, so the ordering
// and tie-break semantics of LongestMatch are untouched.
type keyCache struct {
	entries []*keyCacheEntry
	index   map[uint64]struct{}
}

func newKeyCache() *keyCache {
	return &keyCache{index: make(map[uint64]struct{})}
}

func hashName(n encoding.Name) uint64 {
	return xxhash.Sum64String(n.String())
}

// has is the advisory O(1) pre-check: if the hash of the exact name was
// never inserted, there is still a chance a shorter prefix in the cache
// matches via longest-match, so callers must not skip the scan on a miss.
func (k *keyCache) has(n encoding.Name) bool {
	_, ok := k.index[hashName(n)]
	return ok
}

// insert records a verified key, evicting the oldest entry once the cache
// is at capacity.
func (k *keyCache) insert(keyName encoding.Name, key []byte, now time.Time) {
	if k.has(keyName) {
		return
	}
	if len(k.entries) >= maxKeyCacheEntries {
		oldest := k.entries[0]
		k.entries = k.entries[1:]
		delete(k.index, hashName(oldest.keyName))
	}
	k.entries = append(k.entries, &keyCacheEntry{keyName: keyName, key: key, createdAt: now})
	k.index[hashName(keyName)] = struct{}{}
}

// lookup runs a longest-match over cached key names against the requested
// name.
func (k *keyCache) lookup(name encoding.Name) (*keyCacheEntry, bool) {
	return LongestMatch(k.entries, name, func(e *keyCacheEntry) encoding.Name { return e.keyName })
}
