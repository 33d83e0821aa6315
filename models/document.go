package models

import "time"

// ScopeType identifies the audience a configuration document applies to.
type ScopeType string

const (
	// ScopeGlobal documents apply to every request, regardless of route or page.
	ScopeGlobal ScopeType = "global"

	// ScopePage documents apply only when the request's page id matches the
	// document's ScopeKey exactly (case-sensitive, no wildcards).
	ScopePage ScopeType = "page"

	// ScopeRoute documents apply when the request's route path matches the
	// wildcard pattern held in the document's ScopeKey.
	ScopeRoute ScopeType = "route"
)

// Valid reports whether s is one of the three known scope types.
func (s ScopeType) Valid() bool {
	switch s {
	case ScopeGlobal, ScopePage, ScopeRoute:
		return true
	}
	return false
}

// ConfigDocument is a single versioned configuration fact. Documents are
// immutable once written: a logical update is always a new document with a
// higher version for the same (tenant, env, componentKey, scopeType, scopeKey)
// tuple, never an in-place edit.
type ConfigDocument struct {
	// Tenant, Env and ComponentKey form the identity facet of the document.
	Tenant       string `json:"tenant"`
	Env          string `json:"env"`
	ComponentKey string `json:"componentKey"`

	// ScopeType determines the matching semantics of ScopeKey.
	ScopeType ScopeType `json:"scopeType"`

	// ScopeKey is "*" for global documents, an exact page id for page
	// documents, and a wildcard path pattern (e.g. "/products/*") for
	// route documents.
	ScopeKey string `json:"scopeKey"`

	// Version is assigned by the store, monotonically increasing per unique
	// identity+scope tuple, starting at 1.
	Version int64 `json:"version"`

	// Value is the partial configuration payload. It is never required to be
	// complete; missing fields fall through to less specific layers.
	Value Value `json:"value"`

	// CreatedAt and CreatedBy are provenance only and take no part in
	// resolution.
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ScopeID is the grouping key used for the latest-per-scope reduction.
type ScopeID struct {
	Type ScopeType
	Key  string
}

// ScopeID returns the document's scope grouping key.
func (d ConfigDocument) ScopeID() ScopeID {
	return ScopeID{Type: d.ScopeType, Key: d.ScopeKey}
}
