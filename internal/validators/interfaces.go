package validators

import (
	"context"

	"github.com/MKhiriev/mn-config/models"
)

// Validator checks a candidate configuration value against the schema
// declared for the component, if any.
//
// Implementations return nil when the value is acceptable — including the
// case where the component has no declared schema, since validation is
// opt-in per component. Otherwise every violation is reported, ordered
// deterministically by (path, message).
type Validator interface {
	Validate(ctx context.Context, componentKey string, value models.Value) []models.ValidationIssue
}
