package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xdr-ls.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, []string{".x"}, cfg.Index.Extension)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[index]
extension = [".x", ".xdr"]
exclude = ["vendor/**"]
workers = 2

[log]
level = "debug"
file = "/tmp/xdr-ls.log"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{".x", ".xdr"}, cfg.Index.Extension)
	require.Equal(t, []string{"vendor/**"}, cfg.Index.Exclude)
	require.Equal(t, 2, cfg.Index.Workers)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/tmp/xdr-ls.log", cfg.Log.File)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"warn\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{".x"}, cfg.Index.Extension)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[index]\nextnsion = [\".x\"]\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown key")
}

func TestLoadRejectsBadLevel(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"loud\"\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for name, want := range cases {
		cfg := Config{Log: LogConfig{Level: name}}
		got, err := cfg.LogLevel()
		require.NoError(t, err, "level %q", name)
		require.Equal(t, want, got, "level %q", name)
	}

	_, err := Config{Log: LogConfig{Level: "loud"}}.LogLevel()
	require.Error(t, err)
}
