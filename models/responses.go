package models

// UpsertResponse acknowledges a successful write with the server-assigned
// version number.
type UpsertResponse struct {
	Status  string `json:"status"`
	Version int64  `json:"version"`
}

// StatusResponse acknowledges administrative operations (bulk deletes).
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// ValidationErrorResponse is the payload returned for rejected writes: an
// error kind tag plus the ordered list of per-field violations.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationIssue `json:"details"`
}
