package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/arise/internal/constants"
	"github.com/julianstephens/arise/internal/utils"
)

const (
	DefaultConfigFileName = "config.toml"

	EnvStore  = "ARISE_STORE"
	EnvConfig = "ARISE_CONFIG"
)

type Config struct {
	// Store is a store URI: a SQLite path, a .json file, diskv://DIR,
	// a postgres:// connection string, "keyring" or "memory:".
	Store                string `toml:"store"`
	Timezone             string `toml:"timezone"`
	NotificationsEnabled bool   `toml:"notifications_enabled"`
	Debug                bool   `toml:"debug"`
	AutoBackup           bool   `toml:"auto_backup"`
}

func Default() Config {
	return Config{
		Store:                constants.DefaultStorePath,
		Timezone:             "Local",
		NotificationsEnabled: true,
		AutoBackup:           true,
	}
}

// Path resolves the config file location: flag, then ARISE_CONFIG, then the default.
func Path(flag string) (string, error) {
	p := flag
	if p == "" {
		p = os.Getenv(EnvConfig)
	}
	if p == "" {
		p = constants.DefaultConfigPath
	}
	return utils.ExpandPath(p)
}

// LoadOrCreate reads the config at path, writing the defaults first if the
// file does not exist.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Store == "" {
		cfg.Store = constants.DefaultStorePath
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if !utils.ValidateTimezone(cfg.Timezone) {
		return cfg, fmt.Errorf("invalid timezone %q in %s", cfg.Timezone, path)
	}
	return cfg, nil
}

// ApplyOverrides layers ARISE_STORE and the command-line flags over the file values.
func (c *Config) ApplyOverrides(store string, debug bool) {
	if env := os.Getenv(EnvStore); env != "" {
		c.Store = env
	}
	if store != "" {
		c.Store = store
	}
	if debug {
		c.Debug = true
	}
}

func Save(path string, cfg Config) error {
	return write(path, cfg)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
