package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/mn-config/models"
)

// ErrUnknownScopeType is returned by Upsert when the request carries a scope
// type other than "global", "page" or "route".
var ErrUnknownScopeType = errors.New("unknown scope type")

// ValidationError is returned by Upsert when the submitted value fails its
// component's JSON-schema validation. The write is rejected and no version is
// assigned.
type ValidationError struct {
	Issues []models.ValidationIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: %d issue(s)", len(e.Issues))
}
