package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.True(t, cfg.Registry.Freeze)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\nregistry:\n  metrics: true\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Encoding)
		assert.True(t, cfg.Registry.Freeze)
		assert.True(t, cfg.Registry.Metrics)
	})
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("log:\n  level: loud\n  encoding: xml\n"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)

	_, err = Parse([]byte("log: ["))
	assert.Error(t, err)
}
