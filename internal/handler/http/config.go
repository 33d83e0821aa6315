// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/internal/service"
	"github.com/MKhiriev/mn-config/models"
)

// resolve handles GET /api/mn-config/{componentKey}: the effective
// configuration of one component for the request context.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	componentKey := chi.URLParam(r, "componentKey")

	value, err := h.services.Config.Resolve(r.Context(), resolveContextFromRequest(r), componentKey)
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolve").Str("componentKey", componentKey).Msg("error resolving config")
		http.Error(w, "error resolving config", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, value, log)
}

// resolveAll handles GET /api/mn-config: every known component resolved for
// the request context, keyed by componentKey.
func (h *Handler) resolveAll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	resolved, err := h.services.Config.ResolveAll(r.Context(), resolveContextFromRequest(r))
	if err != nil {
		log.Err(err).Str("func", "*Handler.resolveAll").Msg("error resolving configs")
		http.Error(w, "error resolving configs", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, resolved, log)
}

// upsert handles PUT /api/mn-config/{componentKey}: validates the submitted
// value and appends it as a new document version. Addressing fields may come
// from the JSON body or fall back to query parameters.
func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	componentKey := chi.URLParam(r, "componentKey")

	var req models.UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.upsert").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	applyQueryFallbacks(&req, r)

	version, err := h.services.Config.Upsert(r.Context(), componentKey, req)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			log.Warn().Str("func", "*Handler.upsert").Str("componentKey", componentKey).Msg("config value failed validation")
			writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{
				Error:   "ValidationError",
				Details: validationErr.Issues,
			}, log)
			return
		}

		log.Err(err).Str("func", "*Handler.upsert").Str("componentKey", componentKey).Msg("error saving config")
		http.Error(w, "error saving config", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, models.UpsertResponse{Status: "ok", Version: version}, log)
}

// history handles GET /api/mn-config/history/{componentKey}: every stored
// version of every scope of the component under tenant/env.
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	componentKey := chi.URLParam(r, "componentKey")

	docs, err := h.services.Config.History(r.Context(), r.URL.Query().Get("tenant"), r.URL.Query().Get("env"), componentKey)
	if err != nil {
		log.Err(err).Str("func", "*Handler.history").Str("componentKey", componentKey).Msg("error reading config history")
		http.Error(w, "error reading config history", statusFromError(err))
		return
	}

	if docs == nil {
		docs = []models.ConfigDocument{}
	}
	writeJSON(w, http.StatusOK, docs, log)
}

// clearAll handles DELETE /api/mn-config: clears the whole document
// collection across all tenants and environments.
func (h *Handler) clearAll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Config.DeleteAll(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.clearAll").Msg("error clearing configs")
		http.Error(w, "error clearing configs", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "cleared"}, log)
}

// deleteComponent handles DELETE /api/mn-config/{componentKey}: removes all
// documents of one component under tenant/env.
func (h *Handler) deleteComponent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	componentKey := chi.URLParam(r, "componentKey")

	err := h.services.Config.DeleteComponent(r.Context(), r.URL.Query().Get("tenant"), r.URL.Query().Get("env"), componentKey)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteComponent").Str("componentKey", componentKey).Msg("error deleting configs")
		http.Error(w, "error deleting configs", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, models.StatusResponse{Status: "deleted"}, log)
}

// health handles GET /health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{OK: true}, logger.FromRequest(r))
}

func resolveContextFromRequest(r *http.Request) models.ResolveContext {
	query := r.URL.Query()
	return models.ResolveContext{
		Tenant: query.Get("tenant"),
		Env:    query.Get("env"),
		Route:  query.Get("route"),
		Page:   query.Get("page"),
	}
}

// applyQueryFallbacks fills addressing fields the body left empty from query
// parameters. Body values always win; the service applies final defaults.
func applyQueryFallbacks(req *models.UpsertRequest, r *http.Request) {
	query := r.URL.Query()
	if req.Tenant == "" {
		req.Tenant = query.Get("tenant")
	}
	if req.Env == "" {
		req.Env = query.Get("env")
	}
	if req.ScopeType == "" {
		req.ScopeType = models.ScopeType(query.Get("scopeType"))
	}
	if req.ScopeKey == "" {
		req.ScopeKey = query.Get("scopeKey")
	}
	if req.UpdatedBy == "" {
		req.UpdatedBy = query.Get("updatedBy")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Err(err).Str("func", "writeJSON").Msg("error encoding response")
	}
}
