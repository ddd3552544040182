// Package config loads the indexer's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration file.
type Config struct {
	Index IndexConfig `toml:"index"`
	Log   LogConfig   `toml:"log"`
}

// IndexConfig controls which files get indexed and how.
type IndexConfig struct {
	Extension []string `toml:"extension"`
	Exclude   []string `toml:"exclude"`
	Workers   int      `toml:"workers"`
}

// LogConfig controls where log output goes and how much of it.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Index: IndexConfig{Extension: []string{".x"}},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads the file at path over the defaults. A missing file is not
// an error; unknown keys and bad values are, so typos fail loudly
// instead of being silently ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if _, err := cfg.LogLevel(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LogLevel maps the configured level name to a slog level.
func (c Config) LogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", c.Log.Level)
	}
}
