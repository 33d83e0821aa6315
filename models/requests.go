package models

// ResolveContext carries the request context a resolution is computed for.
// Route and Page are optional; when empty the corresponding scope layer is
// skipped entirely.
type ResolveContext struct {
	Tenant string
	Env    string
	Route  string
	Page   string
}

// UpsertRequest is the PUT body for submitting a new document version.
// Tenant/Env fall back to query parameters and then to the server defaults;
// ScopeType defaults to "global" and ScopeKey to "*".
type UpsertRequest struct {
	Tenant    string    `json:"tenant,omitempty"`
	Env       string    `json:"env,omitempty"`
	ScopeType ScopeType `json:"scopeType,omitempty"`
	ScopeKey  string    `json:"scopeKey,omitempty"`
	Value     Value     `json:"value"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}
