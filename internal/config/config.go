// Package config loads engine runtime configuration from a TOML file in
// ~/.pijersi/config.toml, falling back to built-in defaults for anything the
// file does not set. Flag and environment-variable overrides on top of this
// are cmd/pijersi-engine's responsibility (via viper), not this package's;
// config only knows about the on-disk file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Dir is the name of the engine's per-user config directory.
const Dir = ".pijersi"

// FileName is the name of the TOML config file within Dir.
const FileName = "config.toml"

// Config holds the engine defaults a cmd binary seeds its Options from.
type Config struct {
	// Depth is the default search depth limit (engine.Options.Depth).
	Depth int `toml:"depth"`
	// Hash is the transposition table size in MB (engine.Options.Hash).
	Hash uint `toml:"hash"`
	// Noise is the evaluation jitter magnitude (engine.Options.Noise).
	Noise int `toml:"noise"`
	// Workers bounds the root-splitting search's worker count.
	Workers int `toml:"workers"`
	// UseBook toggles opening book lookup.
	UseBook bool `toml:"use_book"`
	// BookPath is the filesystem path to the badger opening book directory.
	BookPath string `toml:"book_path"`
	// LogLevel names a minimum log severity. It is loaded and saved with the
	// file only; nothing in this repository applies it to logw.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration, used when no config file is
// present and nothing in it overrides a given field.
func Default() Config {
	return Config{
		Depth:    6,
		Hash:     64,
		Noise:    0,
		Workers:  0,
		UseBook:  false,
		BookPath: "",
		LogLevel: "info",
	}
}

// Load reads configuration from the default per-user location.
func Load() (Config, error) {
	dir, err := Home()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(filepath.Join(dir, FileName))
}

// LoadFrom reads configuration from an explicit TOML path, which need not
// exist -- a missing file yields Default() unchanged. A malformed file is
// reported as an error and Default() is still returned alongside it.
func LoadFrom(path string) (Config, error) {
	c := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}

	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Default(), fmt.Errorf("config: failed to read %v: %w", path, err)
	}
	return c, nil
}

// Save writes c as TOML to the default per-user location, creating the
// directory if needed.
func Save(c Config) error {
	dir, err := Home()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: failed to create %v: %w", dir, err)
	}
	return SaveTo(filepath.Join(dir, FileName), c)
}

// SaveTo writes c as TOML to an explicit path.
func SaveTo(path string, c Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: failed to create %v: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: failed to write %v: %w", path, err)
	}
	return nil
}

// Home returns the engine's per-user config directory, creating nothing.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, Dir), nil
}
