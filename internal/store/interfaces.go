package store

import (
	"context"

	"github.com/MKhiriev/mn-config/models"
)

// DocumentRepository is the append-only collection of versioned configuration
// documents.
//
// Implementations must guarantee:
//   - SaveNewVersion assigns versions atomically: the read-max-then-append
//     sequence is serialized, so concurrent writers for the same
//     identity+scope can never observe the same next version;
//   - every successful mutation is persisted before the call returns, so a
//     scan performed immediately afterwards observes the write;
//   - readers see a consistent snapshot — never a partially appended
//     document or a torn delete.
type DocumentRepository interface {
	// SaveNewVersion appends doc with the next version for its
	// (tenant, env, componentKey, scopeType, scopeKey) tuple and returns
	// the assigned version, starting at 1. The Version field of doc is
	// ignored on input.
	SaveNewVersion(ctx context.Context, doc models.ConfigDocument) (int64, error)

	// Scan returns all documents for the identity triple, every version and
	// every scope, in no particular order.
	Scan(ctx context.Context, tenant, env, componentKey string) ([]models.ConfigDocument, error)

	// ComponentKeys returns every componentKey that has at least one
	// document under the tenant/env pair.
	ComponentKeys(ctx context.Context, tenant, env string) ([]string, error)

	// DeleteAll removes every document in the collection.
	DeleteAll(ctx context.Context) error

	// DeleteWhere removes all documents matching the exact identity triple,
	// leaving documents of other tenants, envs and components untouched.
	DeleteWhere(ctx context.Context, tenant, env, componentKey string) error
}
