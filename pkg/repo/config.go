package repo

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "config.toml"

// Config stores repository-local settings read from .gitlet/config.toml.
type Config struct {
	Core CoreConfig `toml:"core"`
	Log  LogConfig  `toml:"log"`
}

type CoreConfig struct {
	// DefaultBranch is the branch created by Init.
	DefaultBranch string `toml:"default_branch"`
	// IgnoreFile names the ignore-pattern file relative to the root.
	IgnoreFile string `toml:"ignore_file"`
	// LockTimeout bounds how long a mutating command waits for the
	// repository lock.
	LockTimeout Duration `toml:"lock_timeout"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration that round-trips through TOML as a string
// such as "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the settings used when config.toml is absent or
// leaves a field unset.
func DefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			DefaultBranch: "master",
			IgnoreFile:    ".gitletignore",
			LockTimeout:   Duration{2 * time.Second},
		},
		Log: LogConfig{Level: "warn"},
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Core.DefaultBranch == "" {
		c.Core.DefaultBranch = def.Core.DefaultBranch
	}
	if c.Core.IgnoreFile == "" {
		c.Core.IgnoreFile = def.Core.IgnoreFile
	}
	if c.Core.LockTimeout.Duration <= 0 {
		c.Core.LockTimeout = def.Core.LockTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// ReadConfig reads config.toml from the given metadata directory. A
// missing file yields DefaultConfig.
func ReadConfig(metaDir string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(filepath.Join(metaDir, configFileName), cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// WriteConfig atomically writes config.toml into the metadata directory.
func WriteConfig(metaDir string, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(metaDir, configFileName), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
