package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "game.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_OverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
[game]
tick_rate = "20ms"
max_frames = 600
seed = 99

[database]
enabled = true

[debug]
trace_positions = true
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 20*time.Millisecond, cfg.Game.TickRate)
	assert.Equal(t, uint64(600), cfg.Game.MaxFrames)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.True(t, cfg.Game.Autopilot, "untouched keys keep defaults")
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Debug.TracePositions)
	assert.Equal(t, "data/yaml/archetypes.yaml", cfg.Data.Archetypes)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_RepoConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "game.toml"))
	require.NoError(t, err)
	assert.Equal(t, 16*time.Millisecond, cfg.Game.TickRate)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "[game\n"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "[game]\ntick_rate = \"0s\"\n"))
	assert.ErrorContains(t, err, "tick_rate")
}
