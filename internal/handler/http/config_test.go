// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/internal/registry"
	"github.com/MKhiriev/mn-config/internal/service"
	"github.com/MKhiriev/mn-config/internal/store"
	"github.com/MKhiriev/mn-config/internal/validators"
	"github.com/MKhiriev/mn-config/models"
)

func newTestServer(t *testing.T, components map[string]models.RegistryEntry) *httptest.Server {
	t.Helper()

	log := logger.Nop()

	reg, err := registry.New(components)
	require.NoError(t, err)

	repo, err := store.NewFileDocumentRepository(filepath.Join(t.TempDir(), "config_store.json"), log)
	require.NoError(t, err)

	services := service.NewServices(
		&store.Storages{Documents: repo},
		reg,
		validators.NewSchemaValidator(reg, log),
		log,
	)

	server := httptest.NewServer(NewHandler(services, log).Init())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, buf.Bytes()
}

func TestUpsertThenResolve(t *testing.T) {
	server := newTestServer(t, map[string]models.RegistryEntry{
		"mn-table": {Default: models.Value{"pageSize": float64(25), "dense": false}},
	})

	resp, body := doJSON(t, http.MethodPut, server.URL+"/api/mn-config/mn-table", models.UpsertRequest{
		Value: models.Value{"pageSize": float64(100)},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var upserted models.UpsertResponse
	require.NoError(t, json.Unmarshal(body, &upserted))
	assert.Equal(t, "ok", upserted.Status)
	assert.Equal(t, int64(1), upserted.Version)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/mn-config/mn-table", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var resolved models.Value
	require.NoError(t, json.Unmarshal(body, &resolved))
	assert.Equal(t, models.Value{"pageSize": float64(100), "dense": false}, resolved)
}

func TestResolve_RouteAndPageScopes(t *testing.T) {
	server := newTestServer(t, nil)

	resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/mn-config/mn-table", models.UpsertRequest{
		Value: models.Value{"source": "global"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, server.URL+"/api/mn-config/mn-table", models.UpsertRequest{
		ScopeType: models.ScopeRoute, ScopeKey: "/reports/*",
		Value: models.Value{"source": "route"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/mn-config/mn-table?route=/reports/daily", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var resolved models.Value
	require.NoError(t, json.Unmarshal(body, &resolved))
	assert.Equal(t, "route", resolved["source"])

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/mn-config/mn-table?route=/admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &resolved))
	assert.Equal(t, "global", resolved["source"])
}

func TestUpsert_ValidationFailureReturnsDetails(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"pageSize": {"type": "integer"}},
		"required": ["pageSize"]
	}`)
	server := newTestServer(t, map[string]models.RegistryEntry{
		"mn-table": {Schema: schema},
	})

	resp, body := doJSON(t, http.MethodPut, server.URL+"/api/mn-config/mn-table", models.UpsertRequest{
		Value: models.Value{"pageSize": "ten"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "ValidationError", payload.Error)
	require.NotEmpty(t, payload.Details)
	assert.Equal(t, "/pageSize", payload.Details[0].Path)

	// the rejected write must not have produced a version
	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/mn-config/history/mn-table", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var docs []models.ConfigDocument
	require.NoError(t, json.Unmarshal(body, &docs))
	assert.Empty(t, docs)
}

func TestUpsert_UnknownScopeTypeRejected(t *testing.T) {
	server := newTestServer(t, nil)

	resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/mn-config/mn-table", map[string]any{
		"scopeType": "tenant-wide",
		"value":     map[string]any{"pageSize": 10},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpsert_InvalidJSONRejected(t *testing.T) {
	server := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/mn-config/mn-table", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpsert_QueryParameterFallbacks(t *testing.T) {
	server := newTestServer(t, nil)

	resp, _ := doJSON(t, http.MethodPut,
		server.URL+"/api/mn-config/mn-table?tenant=acme&env=prod&scopeType=page&scopeKey=dashboard&updatedBy=alice",
		models.UpsertRequest{Value: models.Value{"pageSize": float64(10)}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/mn-config/history/mn-table?tenant=acme&env=prod", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var docs []models.ConfigDocument
	require.NoError(t, json.Unmarshal(body, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "acme", docs[0].Tenant)
	assert.Equal(t, "prod", docs[0].Env)
	assert.Equal(t, models.ScopePage, docs[0].ScopeType)
	assert.Equal(t, "dashboard", docs[0].ScopeKey)
	assert.Equal(t, "alice", docs[0].CreatedBy)
}

func TestResolveAll(t *testing.T) {
	server := newTestServer(t, map[string]models.RegistryEntry{
		"mn-chart": {Default: models.Value{"type": "bar"}},
	})

	resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/mn-config/mn-table", models.UpsertRequest{
		Value: models.Value{"pageSize": float64(10)},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/api/mn-config", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var resolved map[string]models.Value
	require.NoError(t, json.Unmarshal(body, &resolved))
	require.Len(t, resolved, 2)
	assert.Equal(t, models.Value{"type": "bar"}, resolved["mn-chart"])
	assert.Equal(t, models.Value{"pageSize": float64(10)}, resolved["mn-table"])
}

func TestDeleteEndpoints(t *testing.T) {
	server := newTestServer(t, nil)

	for _, componentKey := range []string{"mn-table", "mn-chart"} {
		resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/mn-config/"+componentKey, models.UpsertRequest{
			Value: models.Value{"n": float64(1)},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodDelete, server.URL+"/api/mn-config/mn-table", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status models.StatusResponse
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "deleted", status.Status)

	resp, body = doJSON(t, http.MethodDelete, server.URL+"/api/mn-config", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Equal(t, "cleared", status.Status)

	resp, body = doJSON(t, http.MethodGet, server.URL+"/api/mn-config/history/mn-chart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var docs []models.ConfigDocument
	require.NoError(t, json.Unmarshal(body, &docs))
	assert.Empty(t, docs)
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, nil)

	resp, body := doJSON(t, http.MethodGet, server.URL+"/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.True(t, health.OK)
}

func TestTraceIDHeaderEchoedAndGenerated(t *testing.T) {
	server := newTestServer(t, nil)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/health", nil)
	assert.NotEmpty(t, resp.Header.Get(traceIDHeader))

	req, err := http.NewRequest(http.MethodGet, server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(traceIDHeader, "trace-123")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "trace-123", resp.Header.Get(traceIDHeader))
}
