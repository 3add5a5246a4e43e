package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig           = "config"
	flagAPI              = "api"
	flagDatabase         = "db"
	flagTimeout          = "timeout"
	flagMergeConcurrency = "merge-concurrency"
	flagAdminRoles       = "admin-roles"
	flagLogLevel         = "log-level"
)

// BindFlags registers the configuration flags on fs. Defaults shown in help
// come from LoadDefaults; only flags the user actually sets override the
// JSON file.
//
//	-c, --config string             path to a JSON config file
//	-a, --api string                storefront API base URL
//	    --db string                 SQLite file for session and guest cart
//	    --timeout duration          API request timeout
//	    --merge-concurrency int     parallel requests when merging the guest cart
//	    --admin-roles strings       roles treated as administrative
//	    --log-level string          debug, info, warn or error
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON config file")
	fs.StringP(flagAPI, "a", d.APIBaseURL, "storefront API base URL")
	fs.String(flagDatabase, d.DatabasePath, "SQLite file for session and guest cart")
	fs.Duration(flagTimeout, d.RequestTimeout, "API request timeout")
	fs.Int(flagMergeConcurrency, d.MergeConcurrency, "parallel requests when merging the guest cart")
	fs.StringSlice(flagAdminRoles, d.AdminRoles, "roles treated as administrative")
	fs.String(flagLogLevel, d.LogLevel, "log level: debug, info, warn or error")
}

// parseFlags copies every flag that was set explicitly on fs into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error

	if fs.Changed(flagAPI) {
		if cfg.APIBaseURL, err = fs.GetString(flagAPI); err != nil {
			return err
		}
	}
	if fs.Changed(flagDatabase) {
		if cfg.DatabasePath, err = fs.GetString(flagDatabase); err != nil {
			return err
		}
	}
	if fs.Changed(flagTimeout) {
		if cfg.RequestTimeout, err = fs.GetDuration(flagTimeout); err != nil {
			return err
		}
	}
	if fs.Changed(flagMergeConcurrency) {
		if cfg.MergeConcurrency, err = fs.GetInt(flagMergeConcurrency); err != nil {
			return err
		}
	}
	if fs.Changed(flagAdminRoles) {
		if cfg.AdminRoles, err = fs.GetStringSlice(flagAdminRoles); err != nil {
			return err
		}
	}
	if fs.Changed(flagLogLevel) {
		if cfg.LogLevel, err = fs.GetString(flagLogLevel); err != nil {
			return err
		}
	}
	return nil
}
