// Package ugi implements the UGI protocol adapter: a UCI-family text loop
// that turns position/go/stop commands into pkg/engine calls and streams
// info/bestmove lines back out.
package ugi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/engine"
	"github.com/hexfort/pijersi/pkg/psn"
	"github.com/hexfort/pijersi/pkg/search"
	"github.com/hexfort/pijersi/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

const ProtocolName = "ugi"

// Driver runs the UGI command loop against one engine.Engine. Activated by
// the "ugi" command, it replies with id/ugiok, then processes commands from
// in until either "quit" or in is closed, writing replies to the returned
// channel.
type Driver struct {
	e *engine.Engine

	out    chan<- string
	active atomic.Bool

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver starts the command loop in a goroutine and returns the driver
// plus its output stream.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{e: e, out: out, quit: make(chan struct{})}
	go d.process(ctx, in)
	return d, out
}

// Close stops the driver, idempotently.
func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

// Closed returns a channel that closes once the driver has stopped.
func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UGI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "ugiok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream closed. Exiting")
				return
			}
			if d.dispatch(ctx, line) {
				return
			}

		case <-d.quit:
			_, _ = d.e.Stop(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// dispatch handles one input line. It returns true if the driver should
// stop processing further commands (a "quit").
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "isready":
		d.out <- "readyok"

	case "uginewgame":
		_, _ = d.e.Stop(ctx)
		_ = d.e.SetPosition(ctx, psn.Initial)

	case "position":
		d.handlePosition(ctx, args)

	case "go":
		d.handleGo(ctx, args)

	case "stop":
		pv, err := d.e.Stop(ctx)
		if err == nil {
			d.emitResult(pv)
		}

	case "query":
		d.handleQuery(ctx, args)

	case "quit":
		return true

	default:
		logw.Warningf(ctx, "Unknown command %q: %v", cmd, args)
	}
	return false
}

// handlePosition implements "position [psn <psnstring> | startpos] [moves m1 m2 ...]".
func (d *Driver) handlePosition(ctx context.Context, args []string) {
	_, _ = d.e.Stop(ctx)

	position := psn.Initial
	i := 0
	if len(args) > 0 && args[0] == "psn" {
		if len(args) < 5 {
			logw.Errorf(ctx, "Malformed position psn command: %v", args)
			return
		}
		position = strings.Join(args[1:5], " ")
		i = 5
	} else if len(args) > 0 && args[0] == "startpos" {
		i = 1
	}

	if err := d.e.SetPosition(ctx, position); err != nil {
		logw.Errorf(ctx, "Invalid position: %v", err)
		return
	}

	if i < len(args) && args[i] == "moves" {
		for _, m := range args[i+1:] {
			if err := d.e.ApplyMoveStr(ctx, m); err != nil {
				logw.Errorf(ctx, "Invalid position move %q: %v", m, err)
				return
			}
		}
	}
}

// handleGo implements "go depth <n>" and "go movetime <ms>".
func (d *Driver) handleGo(ctx context.Context, args []string) {
	limit := searchctl.Limit{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i >= len(args) {
				continue
			}
			if n, err := strconv.Atoi(args[i]); err == nil {
				limit = searchctl.DepthLimit(n)
			}
		case "movetime":
			i++
			if i >= len(args) {
				continue
			}
			if n, err := strconv.Atoi(args[i]); err == nil {
				limit = searchctl.MoveTimeLimit(time.Duration(n) * time.Millisecond)
			}
		}
	}

	out, err := d.e.Go(ctx, limit)
	if err != nil {
		logw.Errorf(ctx, "go failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			if d.active.Load() {
				d.out <- printPV(pv)
			}
		}
		d.emitResult(last)
	}()
}

// handleQuery implements "query gameover|result|islegal <move>|fen".
func (d *Driver) handleQuery(ctx context.Context, args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "gameover":
		d.out <- fmt.Sprintf("response %v", d.e.GameOver())
	case "result":
		d.out <- fmt.Sprintf("response %v", d.e.Result())
	case "islegal":
		if len(args) < 2 {
			d.out <- "response false"
			return
		}
		d.out <- fmt.Sprintf("response %v", d.e.IsLegal(args[1]))
	case "fen", "psn":
		d.out <- fmt.Sprintf("response %v", d.e.FEN())
	default:
		logw.Warningf(ctx, "Unknown query %q", args[0])
	}
}

func (d *Driver) emitResult(pv search.PV) {
	if !d.active.CAS(true, false) {
		return // stale or duplicate result.
	}
	if len(pv.Moves) == 0 {
		d.out <- "bestmove 0000"
		return
	}
	d.out <- printPV(pv)
	d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
}

func printPV(pv search.PV) string {
	parts := []string{"info", fmt.Sprintf("depth %v", pv.Depth)}
	if md, ok := pv.Score.MateDistance(); ok {
		parts = append(parts, fmt.Sprintf("score mate %v", md))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %.3f", pv.Time.Seconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv", board.PrintMoves(pv.Moves))
	}
	return strings.Join(parts, " ")
}
