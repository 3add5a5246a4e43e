package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - APIBaseURL: base URL of the storefront REST API (e.g. http://host/rest).
//   - DatabasePath: SQLite file holding the session and the guest cart.
//   - RequestTimeout: per-request timeout of the API client.
//   - MergeConcurrency: how many guest lines are pushed at once after login.
//   - AdminRoles: role names treated as administrative.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL       string        `validate:"required,url"`
	DatabasePath     string        `validate:"required"`
	RequestTimeout   time.Duration `validate:"gt=0"`
	MergeConcurrency int           `validate:"min=1,max=64"`
	AdminRoles       []string      `validate:"required,min=1,dive,required"`
	LogLevel         string        `validate:"oneof=debug info warn warning error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/rest"
	c.DatabasePath = "storefront.db"
	c.RequestTimeout = 10 * time.Second
	c.MergeConcurrency = 4
	c.AdminRoles = append([]string(nil), session.DefaultAdminRoles...)
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if --config is set) and from the flags that were set explicitly on
// fs. Later sources take precedence over earlier ones. fs must have been
// prepared with BindFlags and parsed.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("config flag: %w", err)
	}
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
