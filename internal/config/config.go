package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Ricardoipr/foldersynch/internal/utils"
)

var (
	home, _            = os.UserHomeDir()
	DefaultConfigPath  = filepath.Join(home, ".foldersynch", "config.json")
	DefaultLogFilePath = filepath.Join(home, ".foldersynch", "logs", "foldersynch.log")

	DefaultIntervalSeconds = 60
	DefaultCooldownSeconds = 10
)

var (
	ErrSourceRequired  = errors.New("source directory is required")
	ErrReplicaRequired = errors.New("replica directory is required")
)

type Config struct {
	SourceDir       string `json:"source_dir" mapstructure:"source_dir"`
	ReplicaDir      string `json:"replica_dir" mapstructure:"replica_dir"`
	LogPath         string `json:"log_path" mapstructure:"log_path"`
	IntervalSeconds int    `json:"interval_seconds" mapstructure:"interval_seconds"`
	CooldownSeconds int    `json:"cooldown_seconds" mapstructure:"cooldown_seconds"`
	Watch           bool   `json:"watch" mapstructure:"watch"`
	Path            string `json:"-"`
}

// Validate resolves the source and replica paths and rejects configurations
// that a sync cycle could never survive, in particular nested roots: a
// replica inside the source would be mirrored into itself, and a source
// inside the replica would be pruned away.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return ErrSourceRequired
	}
	if c.ReplicaDir == "" {
		return ErrReplicaRequired
	}

	src, err := utils.ResolvePath(c.SourceDir)
	if err != nil {
		return fmt.Errorf("invalid source dir: %w", err)
	}
	dst, err := utils.ResolvePath(c.ReplicaDir)
	if err != nil {
		return fmt.Errorf("invalid replica dir: %w", err)
	}

	if src == dst {
		return fmt.Errorf("source and replica are the same directory: %s", src)
	}
	if utils.IsSubPath(src, dst) {
		return fmt.Errorf("replica %s is inside source %s", dst, src)
	}
	if utils.IsSubPath(dst, src) {
		return fmt.Errorf("source %s is inside replica %s", src, dst)
	}

	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval must be a positive number of seconds, got %d", c.IntervalSeconds)
	}
	if c.CooldownSeconds < 0 {
		return fmt.Errorf("cooldown cannot be negative, got %d", c.CooldownSeconds)
	}

	c.SourceDir = src
	c.ReplicaDir = dst

	if c.LogPath == "" {
		c.LogPath = DefaultLogFilePath
	}

	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{
		IntervalSeconds: DefaultIntervalSeconds,
		CooldownSeconds: DefaultCooldownSeconds,
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.Path = path
	return &cfg, nil
}
