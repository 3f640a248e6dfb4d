package config

import (
	"fmt"
	"time"

	"github.com/sqrity/sqrity/internal/generator"
)

// Config holds runtime settings for the sqrity shell.
//
// Fields:
//   - UsersDB: path of the SQLite file holding the users table.
//   - VaultDB: path of the SQLite file holding the vault table. May equal UsersDB.
//   - BusyTimeout: how long a write waits for another process holding the file.
//   - LogLevel: debug, info, warn or error.
//   - GeneratorLength: length used by "generate" when none is typed; 0 means
//     the generator default.
type Config struct {
	UsersDB         string
	VaultDB         string
	BusyTimeout     time.Duration
	LogLevel        string
	GeneratorLength int
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.UsersDB = "users.db"
	c.VaultDB = "vault.db"
	c.BusyTimeout = 5 * time.Second
	c.LogLevel = "info"
	c.GeneratorLength = generator.DefaultLength
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the JSON file at path (if path is not empty).
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides carries values from command-line flags. Nil fields were not set.
type Overrides struct {
	UsersDB         *string
	VaultDB         *string
	BusyTimeout     *time.Duration
	LogLevel        *string
	GeneratorLength *int
}

// Apply overlays the set fields of o onto c.
func (c *Config) Apply(o Overrides) {
	if o.UsersDB != nil {
		c.UsersDB = *o.UsersDB
	}
	if o.VaultDB != nil {
		c.VaultDB = *o.VaultDB
	}
	if o.BusyTimeout != nil {
		c.BusyTimeout = *o.BusyTimeout
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.GeneratorLength != nil {
		c.GeneratorLength = *o.GeneratorLength
	}
}

// Validate rejects settings no store can start with.
func (c *Config) Validate() error {
	if c.UsersDB == "" {
		return fmt.Errorf("users database path is empty")
	}
	if c.VaultDB == "" {
		return fmt.Errorf("vault database path is empty")
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("busy timeout must not be negative, got %s", c.BusyTimeout)
	}
	return nil
}
