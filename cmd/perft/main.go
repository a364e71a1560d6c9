// perft is a move-generator debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/hexfort/pijersi/pkg/board"
	"github.com/hexfort/pijersi/pkg/psn"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 3, "Search depth")
	position = flag.String("psn", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
	seed     = flag.Int64("seed", 1, "Zobrist table seed")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = psn.Initial
	}

	zt := board.NewZobristTable(*seed)
	pos, _, _, _, err := psn.Decode(zt, *position)
	if err != nil {
		logw.Exitf(ctx, "Invalid psn %q: %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := board.Perft(pos, i)
		elapsed := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, elapsed.Microseconds())

		if *divide && i == *depth {
			for m, count := range board.DividedPerft(pos, i) {
				fmt.Printf("  %v: %v\n", m, count)
			}
		}
	}
}
