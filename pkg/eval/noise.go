package eval

import (
	"github.com/hexfort/pijersi/pkg/board"
)

// Random adds a small amount of deterministic jitter to evaluations, used to
// vary otherwise-identical engine-vs-engine games. Limit is the spread in
// score units, applied symmetrically around zero. The jitter is derived from
// the position hash rather than a shared PRNG: root splitting calls the
// evaluator concurrently from many goroutines, and a shared *rand.Rand would
// need a mutex to stay race-free for no benefit over a hash-derived value.
type Random struct {
	limit int
	seed  uint64
}

// NewRandom returns a jitter source with the given spread and seed.
func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, seed: uint64(seed)}
}

// Apply adds jitter to base keyed off pos's Zobrist hash, so the same
// position always gets the same nudge within one engine instance.
func (n Random) Apply(pos *board.Position, base Score) Score {
	if n.limit <= 0 {
		return base
	}
	h := splitmix64(uint64(pos.Hash()) ^ n.seed)
	return base + Score(h%uint64(n.limit)) - Score(n.limit/2)
}

// splitmix64 is a small, fast mixing function used to turn a Zobrist hash
// plus a seed into a well-distributed jitter value.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
