package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads every key", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"api_base_url":      "https://shop.example/rest",
			"database_path":     "/var/lib/shop.db",
			"request_timeout":   "2s",
			"merge_concurrency": 2,
			"admin_roles":       []string{"OWNER"},
			"log_level":         "warn",
		})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, &Config{
			APIBaseURL:       "https://shop.example/rest",
			DatabasePath:     "/var/lib/shop.db",
			RequestTimeout:   2 * time.Second,
			MergeConcurrency: 2,
			AdminRoles:       []string{"OWNER"},
			LogLevel:         "warn",
		}, cfg)
	})

	t.Run("nanosecond durations", func(t *testing.T) {
		path := writeTempJSON(t, dir, "ns.json", map[string]any{"request_timeout": 1500000000})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, path))
		assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
	})

	t.Run("empty path → no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "http://defaults", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, ""))

		assert.Equal(t, "http://defaults", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, filepath.Join(dir, "nope.json")))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, bad))
	})
}
