package service

import (
	"context"

	"github.com/MKhiriev/mn-config/models"
)

// ConfigService resolves effective component configurations from layered,
// versioned documents and manages the document collection.
type ConfigService interface {
	// Resolve computes the effective configuration of one component for the
	// given request context: registry default, then matching global, page
	// and route overrides deep-merged in increasing precedence.
	Resolve(ctx context.Context, rctx models.ResolveContext, componentKey string) (models.Value, error)

	// ResolveAll resolves every known component (registry entries plus any
	// component with stored documents) for the given context.
	ResolveAll(ctx context.Context, rctx models.ResolveContext) (map[string]models.Value, error)

	// History returns every stored version of every scope for the component
	// under tenant/env, ordered by scope type, scope key and version.
	History(ctx context.Context, tenant, env, componentKey string) ([]models.ConfigDocument, error)

	// Upsert validates the supplied value and appends it as a new document
	// version for the addressed scope, returning the assigned version.
	Upsert(ctx context.Context, componentKey string, req models.UpsertRequest) (int64, error)

	// DeleteAll clears the whole document collection.
	DeleteAll(ctx context.Context) error

	// DeleteComponent removes all documents of one component under
	// tenant/env.
	DeleteComponent(ctx context.Context, tenant, env, componentKey string) error
}
