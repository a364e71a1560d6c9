// Package console implements a human-facing debug driver for the engine: a
// readline-backed REPL that prints the board and accepts moves directly,
// the sibling of pkg/ugi's machine-facing command loop.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/engine"
	"github.com/hexfort/pijersi/pkg/psn"
	"github.com/hexfort/pijersi/pkg/search"
	"github.com/hexfort/pijersi/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
)

const ProtocolName = "console"

// Driver is a console driver for interactive debugging: reset/print the
// board, run a bounded search, or simply type a move.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out    chan<- string
	active atomic.Bool
}

// NewDriver starts the console loop reading lines from in, writing replies
// to the returned channel.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			fields := strings.Fields(line)
			if len(fields) == 0 {
				break
			}
			cmd, args := strings.ToLower(fields[0]), fields[1:]

			switch cmd {
			case "reset", "r":
				d.ensureInactive(ctx)

				pos := psn.Initial
				if len(args) > 0 && args[0] != "moves" {
					pos = strings.Join(args[0:4], " ")
				}
				if err := d.e.SetPosition(ctx, pos); err != nil {
					d.out <- fmt.Sprintf("invalid position: %v", err)
					break
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.ApplyMoveStr(ctx, arg); err != nil {
						d.out <- fmt.Sprintf("invalid move %q: %v", arg, err)
						break
					}
				}
				d.printBoard()

			case "print", "p":
				d.printBoard()

			case "go", "g":
				d.ensureInactive(ctx)

				limit := searchctl.Limit{}
				if len(args) > 0 {
					if depth, err := strconv.Atoi(args[0]); err == nil {
						limit = searchctl.DepthLimit(depth)
					}
				}

				out, err := d.e.Go(ctx, limit)
				if err != nil {
					d.out <- fmt.Sprintf("go failed: %v", err)
					break
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.out <- pv.String()
					}
					d.searchCompleted(last)
				}()

			case "stop", "halt":
				if _, err := d.e.Stop(ctx); err == nil {
					d.active.Store(false)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			default:
				// Assume a move if not a recognized command.
				d.ensureInactive(ctx)
				if err := d.e.ApplyMoveStr(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move %q: %v", cmd, err)
				} else {
					d.printBoard()
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Stop(ctx)
}

func (d *Driver) searchCompleted(pv search.PV) {
	if !d.active.CAS(true, false) {
		return // stale or duplicate result.
	}
	if len(pv.Moves) > 0 {
		d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
	} else {
		d.out <- "bestmove 0000"
	}
}

func (d *Driver) printBoard() {
	b := d.e.Board()
	p := b.Position()

	d.out <- ""
	for row := 0; row < board.NumRows; row++ {
		var sb strings.Builder
		if row%2 == 1 {
			sb.WriteString(" ")
		}
		for col := 0; col < rowWidth(row); col++ {
			c := board.NewCell(row, col)
			s, ok := p.Square(c)
			if !ok {
				sb.WriteString(" .. ")
				continue
			}
			sb.WriteString(fmt.Sprintf(" %-3s", s.String()))
		}
		d.out <- sb.String()
	}
	d.out <- ""
	d.out <- fmt.Sprintf("psn:    %v", d.e.FEN())
	d.out <- fmt.Sprintf("result: %v, turn: %v, hash: 0x%x", b.Result(), b.Turn(), b.Hash())
	d.out <- ""
}

func rowWidth(row int) int {
	if row%2 == 0 {
		return 6
	}
	return 7
}

// ReadLines opens an interactive readline prompt and streams each entered
// line to the returned channel until EOF or interrupt, mirroring the
// protocol adapter's own stdin-line reader (pkg/engine.ReadStdinLines) but
// with history and line editing for a human operator.
func ReadLines(ctx context.Context, prompt string) (<-chan string, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, fmt.Errorf("console: failed to start readline: %w", err)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer rl.Close()

		for {
			line, err := rl.Readline()
			if err != nil { // io.EOF or readline.ErrInterrupt
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			out <- line
		}
	}()
	return out, nil
}
