// Package engine wires board, search and book together behind the external
// API a protocol adapter drives: position and move setup, go/stop, and the
// query family.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/book"
	"github.com/hexfort/pijersi/pkg/eval"
	"github.com/hexfort/pijersi/pkg/psn"
	"github.com/hexfort/pijersi/pkg/search"
	"github.com/hexfort/pijersi/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation and runtime search options.
type Options struct {
	// Depth is the default search depth limit, used when go is called with
	// no explicit Limit. Zero means no default: a go with no Limit then
	// searches with no depth bound until halted.
	Depth int
	// Hash is the transposition table size in MB. Zero disables the table.
	Hash uint
	// Noise adds small deterministic jitter to leaf evaluations, in score
	// units, to vary otherwise-identical engine-vs-engine games.
	Noise int
	// Workers bounds the root-splitting parallel search's worker count.
	// Zero means GOMAXPROCS.
	Workers int
	// UseBook toggles opening book lookup at the root.
	UseBook bool
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB, noise=%v, workers=%v, book=%v}", o.Depth, o.Hash, o.Noise, o.Workers, o.UseBook)
}

// Engine encapsulates game state, search and the opening book for one game.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	factory  search.TranspositionTableFactory
	zt       *board.ZobristTable
	seed     int64
	opts     Options
	book     book.Book

	b      *board.Board
	tt     search.TranspositionTable
	noise  eval.Random
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine construction option.
type Option func(*Engine)

// WithTable overrides the transposition table factory, e.g. for tests that
// want search.NoTranspositionTable{} regardless of Options.Hash.
func WithTable(factory search.TranspositionTableFactory) Option {
	return func(e *Engine) { e.factory = factory }
}

// WithOptions sets the engine's default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist sets the seed of the Zobrist table (and of the evaluation
// noise). The table is a deterministic function of the seed; without this
// option the seed is zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithBook configures the opening book consulted at the root.
func WithBook(b book.Book) Option {
	return func(e *Engine) { e.book = b }
}

// New constructs an engine with the standard starting position loaded.
func New(ctx context.Context, name, author string, root search.Search, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		launcher: searchctl.Iterative{Root: root},
		factory:  search.NewTranspositionTable,
		book:     book.None,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)

	_ = e.SetPosition(ctx, psn.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author string.
func (e *Engine) Author() string {
	return e.author
}

// Board returns a fork of the current board, safe for the caller to inspect
// or search without racing the engine's own mutations.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// FEN returns the current position in PSN, the engine's FEN-analogue.
func (e *Engine) FEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return psn.Encode(e.b.Position(), e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// SetPosition resets the engine to the position encoded by the given PSN
// string, discarding any game history (new_engine / set_position).
func (e *Engine) SetPosition(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	pos, _, _, _, err := psn.Decode(e.zt, position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos)

	e.tt = search.NoTranspositionTable{}
	if e.opts.Hash > 0 {
		e.tt = e.factory(ctx, uint64(e.opts.Hash)<<20)
	}
	e.noise = eval.Random{}
	if e.opts.Noise > 0 {
		e.noise = eval.NewRandom(e.opts.Noise, e.seed)
	}

	logw.Infof(ctx, "New position: %v", e.b)
	return nil
}

// ApplyMoveStr applies a move given in board notation ("a4b5" or
// "a4b5d6"), usually the opponent's reply (apply_move_str).
func (e *Engine) ApplyMoveStr(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	from, to, via, hasVia, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.Position().ResolveMove(from, to, via, hasVia)
	if !ok {
		return fmt.Errorf("illegal move: %v", move)
	}
	if !e.b.PushMove(m) {
		return fmt.Errorf("illegal move: %v", move)
	}
	// The game advanced: age the transposition table so entries from
	// searches of earlier positions yield to fresh ones at equal depth.
	e.tt.NewGeneration()

	logw.Infof(ctx, "Applied %v: %v", m, e.b)
	return nil
}

// IsLegal reports whether move is legal in the current position
// (query_islegal).
func (e *Engine) IsLegal(move string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	from, to, via, hasVia, err := board.ParseMove(move)
	if err != nil {
		return false
	}
	_, ok := e.b.Position().ResolveMove(from, to, via, hasVia)
	return ok
}

// GameOver reports whether the game has ended (query_gameover).
func (e *Engine) GameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Result().Outcome != board.Undecided
}

// Result returns the current game result (query_result).
func (e *Engine) Result() board.Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Result()
}

// Go launches a search under the given limit, consulting the opening book
// first. If the book has a move, it is returned immediately as a depth-1 PV
// without touching the search tree.
func (e *Engine) Go(ctx context.Context, limit searchctl.Limit) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	if e.opts.UseBook {
		if move, _, ok := e.book.Find(ctx, e.b.Hash()); ok {
			out := make(chan search.PV, 1)
			out <- search.PV{Depth: 1, Moves: []board.Move{move}}
			close(out)
			logw.Infof(ctx, "Book hit: %v", move)
			return out, nil
		}
	}

	if _, ok := limit.Depth.V(); !ok {
		if _, ok := limit.MoveTime.V(); !ok && e.opts.Depth > 0 {
			limit = searchctl.DepthLimit(e.opts.Depth)
		}
	}

	logw.Infof(ctx, "Go %v, limit=%v", e.b, limit)

	handle, out := e.launcher.Launch(ctx, e.b.Fork(), e.tt, e.noise, searchctl.Options{Limit: limit})
	e.active = handle
	return out, nil
}

// Stop halts the active search and returns its best result so far.
func (e *Engine) Stop(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}

// Close releases engine-owned resources, notably the opening book.
func (e *Engine) Close() error {
	return e.book.Close()
}
