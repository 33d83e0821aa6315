package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/mn-config/models"
)

func TestSortBySpecificity_ShorterKeysFirst(t *testing.T) {
	docs := []models.ConfigDocument{
		{ScopeType: models.ScopeRoute, ScopeKey: "/reports/2026/daily"},
		{ScopeType: models.ScopeRoute, ScopeKey: "/reports/*"},
		{ScopeType: models.ScopeRoute, ScopeKey: "*"},
	}

	sortBySpecificity(docs)

	assert.Equal(t, "*", docs[0].ScopeKey)
	assert.Equal(t, "/reports/*", docs[1].ScopeKey)
	assert.Equal(t, "/reports/2026/daily", docs[2].ScopeKey)
}

func TestSortBySpecificity_StableForEqualScores(t *testing.T) {
	docs := []models.ConfigDocument{
		{ScopeType: models.ScopePage, ScopeKey: "aaaa"},
		{ScopeType: models.ScopePage, ScopeKey: "bbbb"},
	}

	sortBySpecificity(docs)

	assert.Equal(t, "aaaa", docs[0].ScopeKey)
	assert.Equal(t, "bbbb", docs[1].ScopeKey)
}

func TestSpecificityScore_GlobalIsZero(t *testing.T) {
	global := models.ConfigDocument{ScopeType: models.ScopeGlobal, ScopeKey: "*"}
	assert.Equal(t, 0, specificityScore(global))
}
