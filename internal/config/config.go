// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package config

// Config is the top-level configuration container. It is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// App holds application-level settings: the master passphrase source,
	// key file location and version string.
	App App `envPrefix:"APP_"`

	// Storage holds the local database and export destination settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// Passphrase is the master passphrase the data-encryption key is
	// unwrapped with. Must be kept confidential; prefer the environment
	// variable over the flag on shared machines.
	// Env: APP_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`

	// KeyFile is the path to the key file holding the salt and the wrapped
	// data-encryption key. Defaults to a file next to the database.
	// Env: APP_KEY_FILE
	KeyFile string `env:"KEY_FILE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups persistence settings.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// Export holds the export destination settings.
	Export Export `envPrefix:"EXPORT_"`
}

// DB holds the local database file settings.
type DB struct {
	// Path is the SQLite database file path (":memory:" for tests).
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Export holds settings for the export boundary.
type Export struct {
	// Dir is the directory export documents are written into.
	// Env: STORAGE_EXPORT_DIR
	Dir string `env:"DIR"`
}

// GetConfig loads, merges, and validates the configuration from all sources
// in the following priority order (earlier sources win; later sources only
// fill fields still unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *Config or an error if any source fails to load
// or the final config fails validation.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
