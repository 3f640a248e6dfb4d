// Package config loads runtime configuration for the sqrity shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file, path given with -c or --config.
//  3. Command-line flags, applied by the entrypoint for flags the user
//     actually set (see Overrides).
//
// # JSON schema
//
// Durations can be strings like "5s" or integer nanoseconds:
//
//	{
//	  "users_db": "users.db",
//	  "vault_db": "vault.db",
//	  "busy_timeout": "5s",
//	  "log_level": "info",
//	  "generator_length": 14
//	}
//
// Keys missing from the file keep their previous value.
package config
