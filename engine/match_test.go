package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndn-go/face/encoding"
)

func mustName(t *testing.T, s string) encoding.Name {
	n, err := encoding.NameFromStr(s)
	require.NoError(t, err)
	return n
}

func TestLongestMatchPicksDeepestPrefix(t *testing.T) {
	candidates := []string{"/a", "/a/b", "/a/b/c"}
	target := mustName(t, "/a/b/c/d")
	best, ok := LongestMatch(candidates, target, func(s string) encoding.Name { return mustName(t, s) })
	require.True(t, ok)
	require.Equal(t, "/a/b/c", best)
}

func TestLongestMatchTieBreaksToEarliest(t *testing.T) {
	// Both strings parse to the same two-component name /a/b, so only
	// iteration order can decide between them.
	candidates := []string{"/a/b", "/a/b/"}
	target := mustName(t, "/a/b/c")
	best, ok := LongestMatch(candidates, target, func(s string) encoding.Name { return mustName(t, s) })
	require.True(t, ok)
	require.Equal(t, "/a/b", best)
}

func TestLongestMatchNoCandidateMatches(t *testing.T) {
	candidates := []string{"/x", "/y"}
	target := mustName(t, "/a/b")
	_, ok := LongestMatch(candidates, target, func(s string) encoding.Name { return mustName(t, s) })
	require.False(t, ok)
}

func TestFirstMatchPicksEarliestRegardlessOfDepth(t *testing.T) {
	candidates := []string{"/a", "/a/b/c"}
	target := mustName(t, "/a/b/c/d")
	best, ok := FirstMatch(candidates, target, func(s string) encoding.Name { return mustName(t, s) })
	require.True(t, ok)
	require.Equal(t, "/a", best)
}

func TestFirstMatchNoCandidateMatches(t *testing.T) {
	candidates := []string{"/x"}
	target := mustName(t, "/a")
	_, ok := FirstMatch(candidates, target, func(s string) encoding.Name { return mustName(t, s) })
	require.False(t, ok)
}
