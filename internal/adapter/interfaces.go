// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed Go client for the mn-config HTTP API.
//
// The primary abstraction is [ConfigClient], which decouples consumers from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPConfigAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrValidationRejected] for rejected writes).
package adapter

import (
	"context"

	"github.com/MKhiriev/mn-config/models"
)

// ConfigClient defines transport-agnostic access to the mn-config server.
// Implementations are responsible for serialisation and for mapping
// transport-level errors to the sentinel values defined in this package.
type ConfigClient interface {
	// Resolve fetches the effective configuration of one component for the
	// given request context.
	Resolve(ctx context.Context, rctx models.ResolveContext, componentKey string) (models.Value, error)

	// ResolveAll fetches the effective configuration of every known
	// component for the given request context, keyed by componentKey.
	ResolveAll(ctx context.Context, rctx models.ResolveContext) (map[string]models.Value, error)

	// History fetches every stored version of every scope of the component
	// under tenant/env.
	History(ctx context.Context, tenant, env, componentKey string) ([]models.ConfigDocument, error)

	// Upsert submits a new document version and returns the server-assigned
	// version number. A write rejected by schema validation returns an error
	// wrapping [ErrValidationRejected].
	Upsert(ctx context.Context, componentKey string, req models.UpsertRequest) (int64, error)

	// DeleteComponent removes all documents of one component under
	// tenant/env.
	DeleteComponent(ctx context.Context, tenant, env, componentKey string) error

	// DeleteAll clears the whole server-side document collection.
	DeleteAll(ctx context.Context) error

	// Health probes the server's liveness endpoint.
	Health(ctx context.Context) error
}
