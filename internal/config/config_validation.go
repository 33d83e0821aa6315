// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

const (
	defaultHTTPAddress    = ":5050"
	defaultDocumentsPath  = "data/config_store.json"
	defaultRegistryPath   = "schemas/registry.json"
	defaultRequestTimeout = 30 * time.Second
)

// applyDefaults fills every unset field for which the application has a
// sensible development default. The service is meant to start with zero
// configuration: file-backed store, registry file next to the binary,
// port 5050.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.DB.DSN == "" && cfg.Storage.Files.DocumentsPath == "" {
		cfg.Storage.Files.DocumentsPath = defaultDocumentsPath
	}
	if cfg.Registry.Path == "" {
		cfg.Registry.Path = defaultRegistryPath
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if !strings.Contains(cfg.Server.HTTPAddress, ":") {
		return errInvalidHTTPAddress
	}

	return nil
}
