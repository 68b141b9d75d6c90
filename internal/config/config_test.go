package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileMergesAliasesLowercased(t *testing.T) {
	path := writeConfig(t, `
command_aliases:
  REN: Rename
  md: mkdir
  rm: DELETE
hide:
  - "*.pyc"
  - .git
log_file: /tmp/wayfinder.log
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"rm":  "delete",
		"cp":  "copy",
		"mv":  "move",
		"ren": "rename",
		"md":  "mkdir",
	}, cfg.CommandAliases)
	assert.Equal(t, []string{"*.pyc", ".git"}, cfg.Hide)
	assert.Equal(t, "/tmp/wayfinder.log", cfg.LogFile)
}

func TestLoadFileParseErrorFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, "command_aliases: [this is: not a map")

	cfg, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing config file")
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileUnreadableFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadFile(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestAliasesResolve(t *testing.T) {
	aliases := Default().Aliases()

	assert.Equal(t, "delete", aliases.Resolve("RM"))
	assert.Equal(t, "copy", aliases.Resolve("cp"))
	assert.Equal(t, "rename", aliases.Resolve("Rename"))
	assert.Equal(t, 3, aliases.Len())
}

func TestAliasesAreImmutableSnapshot(t *testing.T) {
	table := map[string]string{"x": "refresh"}
	aliases := NewAliases(table)
	table["x"] = "delete"

	assert.Equal(t, "refresh", aliases.Resolve("x"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "logs", "w.log"), expandHome("~/logs/w.log"))
	assert.Equal(t, "/abs/w.log", expandHome("/abs/w.log"))
}
