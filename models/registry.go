package models

import "encoding/json"

// RegistryEntry is the per-component declaration loaded from the registry
// file. Both fields are optional: a component without a default resolves from
// an empty mapping, a component without a schema accepts any value.
type RegistryEntry struct {
	// Default is the baseline value every resolution starts from.
	Default Value `json:"default,omitempty"`

	// Schema is the raw JSON-schema document validated against on upsert.
	// It is compiled once at registry load time.
	Schema json.RawMessage `json:"schema,omitempty"`
}
