package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values.
type JsonConfig struct {
	UsersDB         *string   `json:"users_db"`
	VaultDB         *string   `json:"vault_db"`
	BusyTimeout     *Duration `json:"busy_timeout"`
	LogLevel        *string   `json:"log_level"`
	GeneratorLength *int      `json:"generator_length"`
}

// parseJson overlays cfg with values loaded from the JSON file at path.
// An empty path leaves cfg untouched.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	var timeout *time.Duration
	if jc.BusyTimeout != nil {
		d := time.Duration(jc.BusyTimeout.Duration)
		timeout = &d
	}

	cfg.Apply(Overrides{
		UsersDB:         jc.UsersDB,
		VaultDB:         jc.VaultDB,
		BusyTimeout:     timeout,
		LogLevel:        jc.LogLevel,
		GeneratorLength: jc.GeneratorLength,
	})
	return nil
}
