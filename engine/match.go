// Package engine implements the Face's request/response core: the PIT,
// the CST, the key cache, the verifier, the host-and-port strategy, and the
// Face state machine that drives them against a transport.Transport. Each
// Face owns its own tables; nothing here is package-level state.
package engine

import "github.com/ndn-go/face/encoding"

// LongestMatch returns the candidate whose name is a prefix of (or equal
// to) target with the greatest component count, breaking ties by the
// earliest candidate in iteration order. nameOf extracts the candidate's
// Name so the same helper serves the PIT (by Interest name), the CST (by
// registered prefix) and the key cache (by key name).
//
// A linear scan rather than a trie: these tables are small and
// process-local, so a trie's asymptotic advantage is not worth its
// complexity, and a scan makes the tie-break trivial to get right.
func LongestMatch[T any](candidates []T, target encoding.Name, nameOf func(T) encoding.Name) (T, bool) {
	var best T
	found := false
	bestLen := -1
	for _, c := range candidates {
		name := nameOf(c)
		if !name.IsPrefixOf(target) {
			continue
		}
		if len(name) > bestLen {
			best = c
			bestLen = len(name)
			found = true
		}
	}
	return best, found
}

// FirstMatch returns the first candidate (in iteration order) whose name
// is a prefix of target. Deliberately not longest-match; see cst.go.
func FirstMatch[T any](candidates []T, target encoding.Name, nameOf func(T) encoding.Name) (T, bool) {
	var zero T
	for _, c := range candidates {
		if nameOf(c).IsPrefixOf(target) {
			return c, true
		}
	}
	return zero, false
}
