// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Daybreak Authors

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONConfig mirrors [Config] with json tags for file-based configuration.
type JSONConfig struct {
	App struct {
		Passphrase string `json:"passphrase"`
		KeyFile    string `json:"key_file"`
		Version    string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Path string `json:"path"`
		} `json:"db,omitempty"`

		Export struct {
			Dir string `json:"dir"`
		} `json:"export,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg JSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		App: App{
			Passphrase: jsonCfg.App.Passphrase,
			KeyFile:    jsonCfg.App.KeyFile,
			Version:    jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Path: jsonCfg.Storage.DB.Path,
			},
			Export: Export{
				Dir: jsonCfg.Storage.Export.Dir,
			},
		},
	}

	return cfg, nil
}
