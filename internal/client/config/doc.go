// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/--config.
//  3. Command-line flags that were set explicitly, which override earlier
//     values.
//
// The merged result is checked by (*Config).Validate before use.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or
// integer nanoseconds. Every key is optional:
//
//	{
//	  "api_base_url": "http://localhost:8080/rest",
//	  "database_path": "storefront.db",
//	  "request_timeout": "10s",
//	  "merge_concurrency": 4,
//	  "admin_roles": ["ADMIN", "ROLE_ADMIN"],
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
