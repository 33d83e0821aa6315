package service

import (
	"sort"

	"github.com/MKhiriev/mn-config/models"
)

// specificityScore ranks a scope for merge ordering. Global scopes score 0;
// page and route scopes score by key length, so longer (more specific) keys
// override shorter ones within the same tier.
func specificityScore(doc models.ConfigDocument) int {
	if doc.ScopeType == models.ScopeGlobal {
		return 0
	}
	return len(doc.ScopeKey)
}

// sortBySpecificity orders docs so that less specific scopes come first and
// more specific ones later, i.e. in the order they should be merged. The
// sort is stable: equally specific scopes keep their incoming order.
func sortBySpecificity(docs []models.ConfigDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		return specificityScore(docs[i]) < specificityScore(docs[j])
	})
}
