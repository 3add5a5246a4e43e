package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "10s" or as integer nanoseconds. Keys that are absent keep
// whatever value the Config already had.
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	DatabasePath     string         `json:"database_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	MergeConcurrency int            `json:"merge_concurrency"`
	AdminRoles       []string       `json:"admin_roles"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays cfg with values loaded from the JSON file at path.
// An empty path loads nothing.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.MergeConcurrency != 0 {
		cfg.MergeConcurrency = jc.MergeConcurrency
	}
	if jc.AdminRoles != nil {
		cfg.AdminRoles = jc.AdminRoles
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
