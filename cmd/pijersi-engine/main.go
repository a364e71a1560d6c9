// pijersi-engine is the protocol-adapter entry point: it wires the search
// core to either the UGI command loop or the human-facing debug console,
// picked by the first line of input.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hexfort/pijersi/internal/config"
	"github.com/hexfort/pijersi/pkg/book"
	"github.com/hexfort/pijersi/pkg/engine"
	"github.com/hexfort/pijersi/pkg/search"
	"github.com/hexfort/pijersi/pkg/ugi"
	"github.com/hexfort/pijersi/pkg/ugi/console"
	"github.com/seekerror/logw"
	"github.com/spf13/viper"
)

var (
	depth    = flag.Int("depth", 0, "Default search depth limit (0: use config)")
	hash     = flag.Uint("hash", 0, "Transposition table size in MB (0: use config)")
	noise    = flag.Int("noise", -1, "Evaluation noise in score units (-1: use config)")
	workers  = flag.Int("workers", -1, "Root-splitting worker count (-1: use config, 0: GOMAXPROCS)")
	useBook  = flag.Bool("book", false, "Enable opening book lookup")
	bookPath = flag.String("book-path", "", "Path to a badger opening book directory (empty: use config)")
	cfgPath  = flag.String("config", "", "Path to a TOML config file (empty: use default per-user location)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: pijersi-engine [options]

pijersi-engine is a UGI-speaking Pijersi engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		logw.Exitf(ctx, "Failed to load config: %v", err)
	}
	opts := mergeOptions(cfg)

	var b book.Book = book.None
	if opts.UseBook && opts.bookPath != "" {
		opened, err := book.OpenBadger(ctx, opts.bookPath)
		if err != nil {
			// Non-fatal: proceed with no book.
			logw.Errorf(ctx, "Book load failed, proceeding without a book: %v", err)
		} else {
			b = opened
		}
	}

	root := search.RootSplit{Child: search.AlphaBeta{}, Workers: opts.Options.Workers}
	e := engine.New(ctx, "pijersi-engine", "hexfort", root,
		engine.WithOptions(opts.Options),
		engine.WithBook(b))
	defer e.Close()

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case ugi.ProtocolName:
		driver, out := ugi.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)
		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)
		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported: send %q or %q as the first line", ugi.ProtocolName, console.ProtocolName)
	}
}

func loadConfig() (config.Config, error) {
	if *cfgPath != "" {
		return config.LoadFrom(*cfgPath)
	}
	return config.Load()
}

// merged bundles the engine.Options this binary constructs alongside the
// resolved book path, since engine.Options itself has no BookPath field
// (opening the book is this binary's responsibility, not the engine's).
type merged struct {
	engine.Options
	bookPath string
}

// mergeOptions layers the TOML config (internal/config), PIJERSI_* environment
// variables and explicit command-line flags into one set of engine options,
// in that order of increasing precedence. viper only owns the env/flag
// layering here; the file itself was already decoded by internal/config.
func mergeOptions(cfg config.Config) merged {
	v := viper.New()
	v.SetDefault("depth", cfg.Depth)
	v.SetDefault("hash", cfg.Hash)
	v.SetDefault("noise", cfg.Noise)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("use_book", cfg.UseBook)
	v.SetDefault("book_path", cfg.BookPath)

	v.SetEnvPrefix("pijersi")
	v.AutomaticEnv()

	m := merged{
		Options: engine.Options{
			Depth:   v.GetInt("depth"),
			Hash:    uint(v.GetInt("hash")),
			Noise:   v.GetInt("noise"),
			Workers: v.GetInt("workers"),
			UseBook: v.GetBool("use_book"),
		},
		bookPath: v.GetString("book_path"),
	}

	// Explicit flags win over both the config file and the environment,
	// the way an operator overriding a running engine expects. Sentinel
	// zero/negative flag values mean "not set on the command line".
	if *depth > 0 {
		m.Depth = *depth
	}
	if *hash > 0 {
		m.Hash = *hash
	}
	if *noise >= 0 {
		m.Noise = *noise
	}
	if *workers >= 0 {
		m.Workers = *workers
	}
	if *useBook {
		m.UseBook = true
	}
	if *bookPath != "" {
		m.bookPath = *bookPath
	}
	return m
}
