package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/snapsimp/internal/logs"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "snapsimp")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "Downloads", "mydata"), cfg.ExportRoot)
	require.Equal(t, filepath.Join(home, ".config", "snapsimp", "snapsimp.db"), cfg.DBPath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.Username)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `
export_root = "~/exports"
username = "nathan"
log_level = "debug"
`)
	t.Setenv("SNAPSIMP_USERNAME", "override")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "exports"), cfg.ExportRoot)
	require.Equal(t, "override", cfg.Username)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_LevelAliasMatchesLogger(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `log_level = "warning"`)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, logs.ParseLevel(cfg.LogLevel))
}

func TestLoad_Invalid(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	writeConfig(t, home, `log_level = "loud"`)
	_, err := Load()
	require.ErrorContains(t, err, "invalid config")

	writeConfig(t, home, `export_root = [`)
	_, err = Load()
	require.ErrorContains(t, err, "parse config")
}
