package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTiming(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 400, cfg.UI.AdvanceDelayMs)
	assert.Greater(t, cfg.UI.AdvanceDelay().Milliseconds(), int64(0))
}

func TestEnvOverrides(t *testing.T) {
	t.Run("STRUCTCHECK_DATA_DIR sets data dir", func(t *testing.T) {
		t.Setenv("STRUCTCHECK_DATA_DIR", "/tmp/elsewhere")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "/tmp/elsewhere", cfg.DataDir)
	})

	t.Run("STRUCTCHECK_CONTENT sets catalog path", func(t *testing.T) {
		t.Setenv("STRUCTCHECK_CONTENT", "/tmp/catalog.yaml")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "/tmp/catalog.yaml", cfg.ContentPath)
	})

	t.Run("STRUCTCHECK_DEBUG enables debug mode", func(t *testing.T) {
		t.Setenv("STRUCTCHECK_DEBUG", "true")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("unrelated values ignored", func(t *testing.T) {
		t.Setenv("STRUCTCHECK_DEBUG", "no")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.False(t, cfg.Logging.DebugMode)
	})
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "structcheck.db"), cfg.DatabasePath())
}

func TestLoadReadsFileAndFlagWins(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("content_path: /srv/catalog.yaml\nlogging:\n  debug_mode: true\nui:\n  advance_delay_ms: 0\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir, "flag dir wins over file")
	assert.Equal(t, "/srv/catalog.yaml", cfg.ContentPath)
	assert.True(t, cfg.Logging.DebugMode)
	assert.Zero(t, cfg.UI.AdvanceDelay(), "zero delay is a valid setting")
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("::::"), 0o644))
	_, err := Load(dir)
	assert.Error(t, err)
}
