package validators

import (
	"context"
	"errors"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/internal/registry"
	"github.com/MKhiriev/mn-config/models"
)

// SchemaValidator validates submitted values against the JSON schemas
// compiled into the component registry at startup.
type SchemaValidator struct {
	registry *registry.Registry

	logger *logger.Logger
}

// NewSchemaValidator constructs a [Validator] backed by the given registry.
func NewSchemaValidator(reg *registry.Registry, logger *logger.Logger) Validator {
	return &SchemaValidator{
		registry: reg,
		logger:   logger,
	}
}

// Validate implements [Validator]. Components without a schema accept any
// value. When a schema exists, all violations are collected (not just the
// first) and returned sorted by (path, message) so that error lists are
// stable across runs.
func (v *SchemaValidator) Validate(ctx context.Context, componentKey string, value models.Value) []models.ValidationIssue {
	log := logger.FromContext(ctx)

	schema, ok := v.registry.Schema(componentKey)
	if !ok {
		return nil
	}

	// jsonschema validates the raw JSON-decoded form; models.Value already
	// is map[string]any, but a nil map must validate as an empty object.
	candidate := value
	if candidate == nil {
		candidate = models.Value{}
	}

	err := schema.Validate(map[string]any(candidate))
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		log.Err(err).
			Str("func", "SchemaValidator.Validate").
			Str("component_key", componentKey).
			Msg("schema validation failed with a non-validation error")
		return []models.ValidationIssue{{Path: "", Message: err.Error()}}
	}

	issues := collectLeafIssues(validationErr, nil)
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Message < issues[j].Message
	})

	log.Debug().
		Str("func", "SchemaValidator.Validate").
		Str("component_key", componentKey).
		Int("issues", len(issues)).
		Msg("value rejected by component schema")

	return issues
}

// collectLeafIssues walks the cause tree of a validation error and keeps only
// the leaves: intermediate nodes repeat their children's locations with less
// specific messages.
func collectLeafIssues(err *jsonschema.ValidationError, issues []models.ValidationIssue) []models.ValidationIssue {
	if len(err.Causes) == 0 {
		return append(issues, models.ValidationIssue{
			Path:    err.InstanceLocation,
			Message: err.Message,
		})
	}

	for _, cause := range err.Causes {
		issues = collectLeafIssues(cause, issues)
	}

	return issues
}
