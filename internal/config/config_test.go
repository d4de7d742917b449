package config

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	oldArgs := os.Args
	os.Args = append([]string{"daybreak"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_PASSPHRASE", "correct horse")
	t.Setenv("APP_KEY_FILE", "/data/daybreak.key")
	t.Setenv("STORAGE_DB_PATH", "/data/daybreak.db")
	t.Setenv("STORAGE_EXPORT_DIR", "/exports")
	t.Setenv("CONFIG", "/etc/daybreak.json")

	var cfg Config
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "correct horse", cfg.App.Passphrase)
	assert.Equal(t, "/data/daybreak.key", cfg.App.KeyFile)
	assert.Equal(t, "/data/daybreak.db", cfg.Storage.DB.Path)
	assert.Equal(t, "/exports", cfg.Storage.Export.Dir)
	assert.Equal(t, "/etc/daybreak.json", cfg.JSONFilePath)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "no flags",
			args: nil,
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Storage.DB.Path)
				assert.Empty(t, cfg.App.Passphrase)
			},
		},
		{
			name: "database and key file",
			args: []string{"-d", "my.db", "-key-file", "my.key"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "my.db", cfg.Storage.DB.Path)
				assert.Equal(t, "my.key", cfg.App.KeyFile)
			},
		},
		{
			name: "config alias",
			args: []string{"-config", "cfg.json"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "cfg.json", cfg.JSONFilePath)
			},
		},
		{
			name: "export dir and passphrase",
			args: []string{"-export-dir", "/tmp/out", "-passphrase", "s3cret"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/out", cfg.Storage.Export.Dir)
				assert.Equal(t, "s3cret", cfg.App.Passphrase)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t, tt.args...)
			tt.check(t, ParseFlags())
		})
	}
}

func TestParseJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")

	doc := map[string]any{
		"app": map[string]any{
			"key_file": "json.key",
			"version":  "1.2.3",
		},
		"storage": map[string]any{
			"db":     map[string]any{"path": "json.db"},
			"export": map[string]any{"dir": "json-exports"},
		},
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json.key", cfg.App.KeyFile)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "json.db", cfg.Storage.DB.Path)
	assert.Equal(t, "json-exports", cfg.Storage.Export.Dir)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	assert.Error(t, err)
}

// TestGetConfig_EnvWinsOverJSON exercises the full builder: the env value
// keeps priority and the JSON file only fills the gaps.
func TestGetConfig_EnvWinsOverJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	raw := []byte(`{"app":{"passphrase":"from-json"},"storage":{"db":{"path":"from-json.db"},"export":{"dir":"json-exports"}}}`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv("APP_PASSPHRASE", "from-env")
	t.Setenv("CONFIG", path)
	resetFlags(t)

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.App.Passphrase)
	assert.Equal(t, "from-json.db", cfg.Storage.DB.Path)
	assert.Equal(t, "json-exports", cfg.Storage.Export.Dir)
}

func TestGetConfig_DefaultsApplied(t *testing.T) {
	t.Setenv("APP_PASSPHRASE", "pass")
	t.Setenv("CONFIG", "")
	resetFlags(t)

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, defaultDBPath, cfg.Storage.DB.Path)
	assert.Equal(t, filepath.Join(".", defaultKeyName), cfg.App.KeyFile)
	assert.Equal(t, ".", cfg.Storage.Export.Dir)
}

func TestGetConfig_MissingPassphraseFails(t *testing.T) {
	t.Setenv("APP_PASSPHRASE", "")
	t.Setenv("CONFIG", "")
	resetFlags(t)

	_, err := GetConfig()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}
