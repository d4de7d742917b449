// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package config

import (
	"flag"
)

// ParseFlags parses all configuration flags. The caller may register its
// own command flags on the default flag set before this runs; the single
// flag.Parse here covers both.
//
// Flags:
//
//	-d database file path
//	-key-file key file path (salt + wrapped data key)
//	-export-dir export destination directory
//	-passphrase master passphrase (prefer APP_PASSPHRASE on shared machines)
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var dbPath string
	var keyFile string
	var exportDir string
	var passphrase string
	var jsonConfigPath string

	flag.StringVar(&dbPath, "d", "", "Database file path")
	flag.StringVar(&keyFile, "key-file", "", "Key file path")
	flag.StringVar(&exportDir, "export-dir", "", "Export destination directory")
	flag.StringVar(&passphrase, "passphrase", "", "Master passphrase")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		App: App{
			Passphrase: passphrase,
			KeyFile:    keyFile,
		},
		Storage: Storage{
			DB: DB{
				Path: dbPath,
			},
			Export: Export{
				Dir: exportDir,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
