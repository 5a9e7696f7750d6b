// Package config handles the XDG configuration directory and the optional
// config.yaml / REALTODO_* settings layered on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "realtodo"

	// EnvPrefix prefixes environment overrides, e.g. REALTODO_SERVER.
	EnvPrefix = "REALTODO"

	// FileName is the optional settings file inside the config directory.
	FileName = "config.yaml"

	// LogFile receives log output while the interactive view runs.
	LogFile = "realtodo.log"

	// DefaultServer is the API base address used when none is configured.
	DefaultServer = "http://localhost:8080"

	// DefaultStore keeps the credential in a file in the config directory.
	DefaultStore = "file"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Server is the API base address.
	Server string

	// Store selects where the credential is persisted: "file" or a
	// redis:// URL.
	Store string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config with defaults and the default or specified config
// directory. If configDir is empty, uses XDG_CONFIG_HOME/realtodo or
// $HOME/.config/realtodo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Server: DefaultServer, Store: DefaultStore}, nil
}

// Load creates a Config for configDir and applies config.yaml from that
// directory (if present) and REALTODO_* environment variables, in that
// order of precedence.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("server", cfg.Server)
	v.SetDefault("store", cfg.Store)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("debug", false)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	path := cfg.FilePath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	cfg.Server = v.GetString("server")
	cfg.Store = v.GetString("store")
	cfg.Timeout = v.GetDuration("timeout")
	cfg.Debug = v.GetBool("debug")
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, FileName)
}

// LogPath returns the path to the interactive view's log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
