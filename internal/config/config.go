// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// mn-config application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the application version.
	App App `envPrefix:"APP_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the document store backends: a
	// relational database or a JSON file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Registry holds the location of the component registry file.
	Registry Registry `envPrefix:"REGISTRY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:5050").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the document store backends.
// When DB.DSN is set the SQL backend is used; otherwise documents are
// persisted to the JSON file at Files.DocumentsPath.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the JSON file store settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational document store backend.
type DB struct {
	// DSN is the Data Source Name. A "postgres://..." URI selects the
	// PostgreSQL backend (pgx); any other non-empty value is treated as a
	// SQLite database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds JSON file store settings.
type Files struct {
	// DocumentsPath is the path of the JSON file holding the configuration
	// document collection. Used only when no DSN is configured.
	// Env: STORAGE_FILES_DOCUMENTS_PATH
	DocumentsPath string `env:"DOCUMENTS_PATH"`
}

// Registry holds the component registry settings.
type Registry struct {
	// Path is the location of the registry JSON file
	// ({"components": {key: {default, schema}}}). A missing file is not an
	// error; the service starts with an empty registry.
	// Env: REGISTRY_PATH
	Path string `env:"PATH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
