// Package registry holds the static component registry: the per-component
// default values and compiled validation schemas loaded once at process start.
//
// The registry is deliberately permissive: looking up a component that was
// never registered yields an empty default and no schema, so writes and
// resolutions stay possible for components without an advance registration.
package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/models"
)

// Registry is a read-only lookup of componentKey → {default value, compiled
// schema}. It is immutable after construction and safe for concurrent use.
type Registry struct {
	entries map[string]entry
}

type entry struct {
	defaultValue models.Value
	schema       *jsonschema.Schema
}

type registryFile struct {
	Components map[string]models.RegistryEntry `json:"components"`
}

// Load reads the registry JSON file at path and compiles every declared
// schema. A missing file is not an error: the service starts with an empty
// registry, matching the permissive lookup semantics.
func Load(path string, log *logger.Logger) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Warn().
			Str("func", "registry.Load").
			Str("path", path).
			Msg("registry file not found, starting with an empty registry")
		return New(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading registry file %q: %w", path, err)
	}

	var file registryFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("error decoding registry file %q: %w", path, err)
	}

	reg, err := New(file.Components)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("func", "registry.Load").
		Str("path", path).
		Int("components", len(file.Components)).
		Msg("registry loaded")

	return reg, nil
}

// New builds a Registry from an in-memory component map, compiling every
// declared schema with the 2020-12 draft. Intended for Load and for tests.
func New(components map[string]models.RegistryEntry) (*Registry, error) {
	entries := make(map[string]entry, len(components))

	for key, declared := range components {
		e := entry{defaultValue: declared.Default}

		if len(declared.Schema) > 0 {
			schema, err := compileSchema(key, declared.Schema)
			if err != nil {
				return nil, fmt.Errorf("error compiling schema for component %q: %w", key, err)
			}
			e.schema = schema
		}

		entries[key] = e
	}

	return &Registry{entries: entries}, nil
}

func compileSchema(componentKey string, raw json.RawMessage) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	url := "registry:///" + componentKey + ".schema.json"
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, err
	}

	return compiler.Compile(url)
}

// Default returns a deep copy of the component's declared default value, or
// an empty mapping when the component is unknown or has no default. The
// stored default is never exposed by reference, so callers may freely mutate
// the result.
func (r *Registry) Default(componentKey string) models.Value {
	return models.DeepCopyValue(r.entries[componentKey].defaultValue)
}

// Schema returns the compiled schema for the component, if one was declared.
func (r *Registry) Schema(componentKey string) (*jsonschema.Schema, bool) {
	e, ok := r.entries[componentKey]
	if !ok || e.schema == nil {
		return nil, false
	}
	return e.schema, true
}

// Keys returns every registered component key in lexicographic order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
