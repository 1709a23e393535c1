package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "cards.json"), cfg.CardsPath())
	assert.Equal(t, filepath.Join("data", "superstar.json"), cfg.SuperstarsPath())
	assert.Equal(t, "decks", cfg.DecksDir)
	assert.False(t, cfg.Shuffle)
	assert.Empty(t, cfg.EffectsFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RAWDEAL_DATA_DIR", "/srv/rawdeal")
	t.Setenv("RAWDEAL_CARDS_FILE", "/tmp/custom-cards.json")
	t.Setenv("RAWDEAL_SHUFFLE", "true")
	t.Setenv("RAWDEAL_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-cards.json", cfg.CardsPath())
	assert.Equal(t, filepath.Join("/srv/rawdeal", "superstar.json"), cfg.SuperstarsPath())
	assert.True(t, cfg.Shuffle)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("RAWDEAL_SEED", "not-a-number")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger("debug", format)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	}

	logger, err := NewLogger("bogus", "console")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
