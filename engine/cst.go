package engine

import (
	"github.com/cespare/xxhash"

	"github.com/ndn-go/face/encoding"
	"github.com/ndn-go/face/ndn"
)

// cstEntry is a registered prefix and its handler. flags carries the
// self-registration flag bitmask that was sent to the forwarder (always
// OR'd with 3).
type cstEntry struct {
	prefix encoding.Name
	sink   ndn.InterestHandler
	flags  uint32
}

// cst is the registered-prefix table: append-only for the Face's lifetime,
// looked up by first-match, not longest-match. This is a deliberate
// choice, kept for compatibility with handlers registered on overlapping
// prefixes where registration order decides precedence. An xxhash-keyed
// set of exactly-registered prefix URIs sits ahead of the register-time
// duplicate check as an O(1) pre-check; lookup still always runs its
// first-match scan, so the ordering and tie-break semantics of FirstMatch
// are untouched.
type cst struct {
	entries []*cstEntry
	index   map[uint64]struct{}
}

func newCst() *cst { return &cst{index: make(map[uint64]struct{})} }

func hashPrefix(n encoding.Name) uint64 {
	return xxhash.Sum64String(n.String())
}

// has reports whether prefix was registered exactly (not as a sub- or
// super-prefix) already.
func (c *cst) has(prefix encoding.Name) bool {
	_, ok := c.index[hashPrefix(prefix)]
	return ok
}

// register appends a new entry. Callers must check has first; register
// does not itself reject duplicates.
func (c *cst) register(prefix encoding.Name, sink ndn.InterestHandler, flags uint32) *cstEntry {
	e := &cstEntry{prefix: prefix, sink: sink, flags: flags}
	c.entries = append(c.entries, e)
	c.index[hashPrefix(prefix)] = struct{}{}
	return e
}

// lookup returns the first entry (in registration order) whose prefix is
// a prefix of name.
func (c *cst) lookup(name encoding.Name) (*cstEntry, bool) {
	return FirstMatch(c.entries, name, func(e *cstEntry) encoding.Name { return e.prefix })
}

func (c *cst) clear() {
	c.entries = nil
	c.index = make(map[uint64]struct{})
}
