package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	tmpDir := t.TempDir()
	return &Config{
		SourceDir:       filepath.Join(tmpDir, "source"),
		ReplicaDir:      filepath.Join(tmpDir, "replica"),
		IntervalSeconds: 60,
		CooldownSeconds: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := validConfig(t)
		require.NoError(t, cfg.Validate())
		assert.True(t, filepath.IsAbs(cfg.SourceDir))
		assert.True(t, filepath.IsAbs(cfg.ReplicaDir))
		assert.Equal(t, DefaultLogFilePath, cfg.LogPath)
	})

	t.Run("missing source", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.SourceDir = ""
		assert.ErrorIs(t, cfg.Validate(), ErrSourceRequired)
	})

	t.Run("missing replica", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.ReplicaDir = ""
		assert.ErrorIs(t, cfg.Validate(), ErrReplicaRequired)
	})

	t.Run("same directory", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.ReplicaDir = cfg.SourceDir
		assert.Error(t, cfg.Validate())
	})

	t.Run("replica inside source", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.ReplicaDir = filepath.Join(cfg.SourceDir, "replica")
		assert.Error(t, cfg.Validate())
	})

	t.Run("source inside replica", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.SourceDir = filepath.Join(cfg.ReplicaDir, "source")
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero interval", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.IntervalSeconds = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative cooldown", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.CooldownSeconds = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_Durations(t *testing.T) {
	cfg := &Config{IntervalSeconds: 90, CooldownSeconds: 15}
	assert.Equal(t, 90*time.Second, cfg.Interval())
	assert.Equal(t, 15*time.Second, cfg.Cooldown())
}

func TestConfig_SaveLoadRoundtrip(t *testing.T) {
	cfg := validConfig(t)
	cfg.Watch = true
	cfg.LogPath = "/var/log/foldersynch"

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.SourceDir, loaded.SourceDir)
	assert.Equal(t, cfg.ReplicaDir, loaded.ReplicaDir)
	assert.Equal(t, cfg.LogPath, loaded.LogPath)
	assert.Equal(t, cfg.IntervalSeconds, loaded.IntervalSeconds)
	assert.Equal(t, cfg.CooldownSeconds, loaded.CooldownSeconds)
	assert.True(t, loaded.Watch)
	assert.Equal(t, path, loaded.Path)
}

func TestLoad_DefaultsWhenFieldsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := []byte(`{"source_dir": "/a", "replica_dir": "/b"}`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultIntervalSeconds, loaded.IntervalSeconds)
	assert.Equal(t, DefaultCooldownSeconds, loaded.CooldownSeconds)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
