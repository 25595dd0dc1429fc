// Package daemon holds the process-level configuration for the simulator.
// Everything here is optional: the console runs with DefaultConfig when no
// config file exists.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full simulator configuration.
type Config struct {
	Auth    AuthConfig    `toml:"auth"`
	Linking LinkingConfig `toml:"linking"`
	Journal JournalConfig `toml:"journal"`
	Export  ExportConfig  `toml:"export"`
	Ops     OpsConfig     `toml:"ops"`
}

// AuthConfig tunes the login guard.
type AuthConfig struct {
	MaxAttempts    int `toml:"max_attempts"`
	LockoutSeconds int `toml:"lockout_seconds"`
}

// LinkingConfig tunes the account-linking retry loop.
type LinkingConfig struct {
	MaxAttempts int `toml:"max_attempts"`
}

// JournalConfig toggles the in-memory transaction history.
type JournalConfig struct {
	Enabled bool `toml:"enabled"`
}

// ExportConfig controls where statement exports land.
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// OpsConfig controls the optional local ops listener (health, metrics,
// stats). Disabled by default; the simulator is a console program.
type OpsConfig struct {
	Enabled bool   `toml:"enabled"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Auth: AuthConfig{
			MaxAttempts:    3,
			LockoutSeconds: 60,
		},
		Linking: LinkingConfig{
			MaxAttempts: 3,
		},
		Journal: JournalConfig{
			Enabled: true,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Ops: OpsConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    9464,
			Metrics: true,
		},
	}
}

// ListenAddr returns the ops listener's host:port.
func (o OpsConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// DefaultConfigPath returns the expected config file location,
// ~/.minibank/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".minibank", "config.toml")
}

// Load reads a TOML config file on top of the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Auth.MaxAttempts < 1 {
		return fmt.Errorf("auth.max_attempts must be at least 1, got %d", c.Auth.MaxAttempts)
	}
	if c.Auth.LockoutSeconds < 1 {
		return fmt.Errorf("auth.lockout_seconds must be at least 1, got %d", c.Auth.LockoutSeconds)
	}
	if c.Linking.MaxAttempts < 1 {
		return fmt.Errorf("linking.max_attempts must be at least 1, got %d", c.Linking.MaxAttempts)
	}
	if c.Ops.Enabled && (c.Ops.Port < 1 || c.Ops.Port > 65535) {
		return fmt.Errorf("ops.port out of range: %d", c.Ops.Port)
	}
	return nil
}
