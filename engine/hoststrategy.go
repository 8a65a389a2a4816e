package engine

import "math/rand"

// HostPort is one candidate forwarder endpoint.
type HostPort struct {
	Host string
	Port uint16
}

// hostStrategy is a stateful enumerator over a list of candidate
// forwarders, shuffled once at construction, each invocation popping and
// returning the next entry. math/rand.Shuffle is used directly; see
// DESIGN.md for why no third-party shuffle primitive is wired here.
type hostStrategy struct {
	candidates []HostPort
	next       int
}

func newHostStrategy(candidates []HostPort, rng *rand.Rand) *hostStrategy {
	shuffled := make([]HostPort, len(candidates))
	copy(shuffled, candidates)
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return &hostStrategy{candidates: shuffled}
}

// nextCandidate returns the next candidate, or false once exhausted.
func (h *hostStrategy) nextCandidate() (HostPort, bool) {
	if h.next >= len(h.candidates) {
		return HostPort{}, false
	}
	c := h.candidates[h.next]
	h.next++
	return c, true
}
