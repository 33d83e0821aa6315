package models

// ValidationIssue describes a single schema violation found in a submitted
// value: the location of the offending node and a human-readable message.
// Issue lists are always ordered by (Path, Message) so that clients and tests
// observe a stable ordering.
type ValidationIssue struct {
	// Path is the JSON-pointer-style location within the submitted value
	// ("" for the value itself, "/items/2/label" for a nested node).
	Path string `json:"path"`

	// Message is the human-readable violation description.
	Message string `json:"message"`
}
