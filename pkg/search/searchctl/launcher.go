// Package searchctl contains the iterative-deepening harness and the stop
// conditions (depth limit, move-time limit, cancellation) that drive one
// pkg/search.Search implementation from the protocol adapter's point of view.
package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/eval"
	"github.com/hexfort/pijersi/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Limit bounds a single search: a fixed depth, or a flat per-move time
// budget. Pijersi games have no chess-style per-side clock.
type Limit struct {
	Depth    lang.Optional[int]
	MoveTime lang.Optional[time.Duration]
}

// DepthLimit returns a Limit that stops after the given fixed depth.
func DepthLimit(depth int) Limit {
	return Limit{Depth: lang.Some(depth)}
}

// MoveTimeLimit returns a Limit that stops once d has elapsed.
func MoveTimeLimit(d time.Duration) Limit {
	return Limit{MoveTime: lang.Some(d)}
}

func (l Limit) String() string {
	if v, ok := l.Depth.V(); ok {
		return fmt.Sprintf("depth=%v", v)
	}
	if v, ok := l.MoveTime.V(); ok {
		return fmt.Sprintf("movetime=%v", v)
	}
	return "unbounded"
}

// Options hold dynamic search options for one Launch.
type Options struct {
	Limit Limit
}

// Launcher manages searches: starting, streaming PVs out, and halting.
type Launcher interface {
	// Launch starts a new iterative-deepening search from b, which the
	// caller must not mutate again until the returned Handle is halted. The
	// returned channel streams the PV of each completed depth and is closed
	// when the search stops. It holds one PV: a PV the caller has not yet
	// received is replaced by the next depth's, so a slow reader may skip
	// depths.
	Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the caller stop a running search and retrieve its best result
// so far. Halt is idempotent and safe to call even if the search already
// finished on its own.
type Handle interface {
	Halt() search.PV
}
