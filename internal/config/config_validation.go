// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package config

import "path/filepath"

const (
	defaultDBPath  = "daybreak.db"
	defaultKeyName = "daybreak.key"
)

// applyDefaults fills the fields every install needs a value for. The key
// file defaults to living next to the database so a backup of the data
// directory captures both.
func (cfg *Config) applyDefaults() {
	if cfg.Storage.DB.Path == "" {
		cfg.Storage.DB.Path = defaultDBPath
	}
	if cfg.App.KeyFile == "" {
		cfg.App.KeyFile = filepath.Join(filepath.Dir(cfg.Storage.DB.Path), defaultKeyName)
	}
	if cfg.Storage.Export.Dir == "" {
		cfg.Storage.Export.Dir = "."
	}
}

// validate checks that the final merged [Config] satisfies all invariants
// before it is used at startup.
func (cfg *Config) validate() error {
	if cfg.Storage.DB.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.Passphrase == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
