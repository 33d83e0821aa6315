// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sort"
	"time"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/internal/registry"
	"github.com/MKhiriev/mn-config/internal/store"
	"github.com/MKhiriev/mn-config/internal/validators"
	"github.com/MKhiriev/mn-config/models"
)

// Fallbacks applied when a request leaves the corresponding field empty.
const (
	DefaultTenant    = "default"
	DefaultEnv       = "dev"
	DefaultScopeKey  = "*"
	DefaultCreatedBy = "dev"
)

// ConfigResolutionService implements ConfigService on top of a document
// repository, the component registry and a value validator.
type ConfigResolutionService struct {
	documents store.DocumentRepository
	registry  *registry.Registry
	validator validators.Validator
	logger    *logger.Logger
}

func NewConfigResolutionService(documents store.DocumentRepository, reg *registry.Registry, validator validators.Validator, log *logger.Logger) *ConfigResolutionService {
	return &ConfigResolutionService{
		documents: documents,
		registry:  reg,
		validator: validator,
		logger:    log,
	}
}

// Resolve computes the effective configuration for one component.
//
// Layering, least to most specific:
//  1. the registry default value;
//  2. global documents;
//  3. page documents whose key equals the context page;
//  4. route documents whose glob pattern matches the context route.
//
// Within the page and route layers, shorter scope keys merge before longer
// ones. Only the latest version of each scope participates.
func (s *ConfigResolutionService) Resolve(ctx context.Context, rctx models.ResolveContext, componentKey string) (models.Value, error) {
	rctx = normalizeContext(rctx)

	docs, err := s.documents.Scan(ctx, rctx.Tenant, rctx.Env, componentKey)
	if err != nil {
		s.logger.Err(err).Str("func", "Resolve").Str("componentKey", componentKey).Msg("error scanning documents")
		return nil, err
	}

	effective := s.registry.Default(componentKey)
	for _, doc := range applicableDocuments(docs, rctx) {
		effective = deepMerge(effective, doc.Value)
	}

	return effective, nil
}

// ResolveAll resolves every component known to the registry or present in the
// store under the context's tenant/env.
func (s *ConfigResolutionService) ResolveAll(ctx context.Context, rctx models.ResolveContext) (map[string]models.Value, error) {
	rctx = normalizeContext(rctx)

	storedKeys, err := s.documents.ComponentKeys(ctx, rctx.Tenant, rctx.Env)
	if err != nil {
		s.logger.Err(err).Str("func", "ResolveAll").Msg("error listing component keys")
		return nil, err
	}

	resolved := make(map[string]models.Value)
	for _, componentKey := range append(s.registry.Keys(), storedKeys...) {
		if _, done := resolved[componentKey]; done {
			continue
		}

		value, resolveErr := s.Resolve(ctx, rctx, componentKey)
		if resolveErr != nil {
			return nil, resolveErr
		}
		resolved[componentKey] = value
	}

	return resolved, nil
}

// History returns every stored document of the component, ordered by scope
// type, scope key and version.
func (s *ConfigResolutionService) History(ctx context.Context, tenant, env, componentKey string) ([]models.ConfigDocument, error) {
	if tenant == "" {
		tenant = DefaultTenant
	}
	if env == "" {
		env = DefaultEnv
	}

	docs, err := s.documents.Scan(ctx, tenant, env, componentKey)
	if err != nil {
		s.logger.Err(err).Str("func", "History").Str("componentKey", componentKey).Msg("error scanning documents")
		return nil, err
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].ScopeType != docs[j].ScopeType {
			return docs[i].ScopeType < docs[j].ScopeType
		}
		if docs[i].ScopeKey != docs[j].ScopeKey {
			return docs[i].ScopeKey < docs[j].ScopeKey
		}
		return docs[i].Version < docs[j].Version
	})

	return docs, nil
}

// Upsert validates and appends a new document version for the addressed
// scope. Missing addressing fields fall back to the server defaults.
func (s *ConfigResolutionService) Upsert(ctx context.Context, componentKey string, req models.UpsertRequest) (int64, error) {
	if req.Tenant == "" {
		req.Tenant = DefaultTenant
	}
	if req.Env == "" {
		req.Env = DefaultEnv
	}
	if req.ScopeType == "" {
		req.ScopeType = models.ScopeGlobal
	}
	if req.ScopeKey == "" {
		req.ScopeKey = DefaultScopeKey
	}
	if req.UpdatedBy == "" {
		req.UpdatedBy = DefaultCreatedBy
	}
	if req.Value == nil {
		req.Value = models.Value{}
	}

	if !req.ScopeType.Valid() {
		s.logger.Warn().Str("func", "Upsert").Str("scopeType", string(req.ScopeType)).Msg("rejected unknown scope type")
		return 0, ErrUnknownScopeType
	}

	if issues := s.validator.Validate(ctx, componentKey, req.Value); len(issues) > 0 {
		s.logger.Warn().
			Str("func", "Upsert").
			Str("componentKey", componentKey).
			Int("issues", len(issues)).
			Msg("rejected invalid config value")
		return 0, &ValidationError{Issues: issues}
	}

	doc := models.ConfigDocument{
		Tenant:       req.Tenant,
		Env:          req.Env,
		ComponentKey: componentKey,
		ScopeType:    req.ScopeType,
		ScopeKey:     req.ScopeKey,
		Value:        req.Value,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    req.UpdatedBy,
	}

	version, err := s.documents.SaveNewVersion(ctx, doc)
	if err != nil {
		s.logger.Err(err).Str("func", "Upsert").Str("componentKey", componentKey).Msg("error saving document")
		return 0, err
	}

	s.logger.Info().
		Str("func", "Upsert").
		Str("componentKey", componentKey).
		Str("scopeType", string(doc.ScopeType)).
		Str("scopeKey", doc.ScopeKey).
		Int64("version", version).
		Msg("config document saved")

	return version, nil
}

// DeleteAll clears the whole document collection.
func (s *ConfigResolutionService) DeleteAll(ctx context.Context) error {
	if err := s.documents.DeleteAll(ctx); err != nil {
		s.logger.Err(err).Str("func", "DeleteAll").Msg("error clearing documents")
		return err
	}

	s.logger.Info().Str("func", "DeleteAll").Msg("all config documents cleared")
	return nil
}

// DeleteComponent removes all documents of one component under tenant/env.
func (s *ConfigResolutionService) DeleteComponent(ctx context.Context, tenant, env, componentKey string) error {
	if tenant == "" {
		tenant = DefaultTenant
	}
	if env == "" {
		env = DefaultEnv
	}

	if err := s.documents.DeleteWhere(ctx, tenant, env, componentKey); err != nil {
		s.logger.Err(err).Str("func", "DeleteComponent").Str("componentKey", componentKey).Msg("error deleting documents")
		return err
	}

	s.logger.Info().
		Str("func", "DeleteComponent").
		Str("tenant", tenant).
		Str("env", env).
		Str("componentKey", componentKey).
		Msg("config documents deleted")

	return nil
}

func normalizeContext(rctx models.ResolveContext) models.ResolveContext {
	if rctx.Tenant == "" {
		rctx.Tenant = DefaultTenant
	}
	if rctx.Env == "" {
		rctx.Env = DefaultEnv
	}
	return rctx
}

// applicableDocuments reduces docs to the latest version of each scope,
// filters out scopes the context does not match, and returns the survivors in
// merge order: globals, then pages, then routes, each tier least specific
// first.
func applicableDocuments(docs []models.ConfigDocument, rctx models.ResolveContext) []models.ConfigDocument {
	latest := latestPerScope(docs)

	var globals, pages, routes []models.ConfigDocument
	for _, doc := range latest {
		switch doc.ScopeType {
		case models.ScopeGlobal:
			globals = append(globals, doc)
		case models.ScopePage:
			if rctx.Page != "" && matchesPage(doc.ScopeKey, rctx.Page) {
				pages = append(pages, doc)
			}
		case models.ScopeRoute:
			if rctx.Route != "" && matchesRoute(doc.ScopeKey, rctx.Route) {
				routes = append(routes, doc)
			}
		}
	}

	sortBySpecificity(pages)
	sortBySpecificity(routes)

	ordered := make([]models.ConfigDocument, 0, len(globals)+len(pages)+len(routes))
	ordered = append(ordered, globals...)
	ordered = append(ordered, pages...)
	ordered = append(ordered, routes...)
	return ordered
}

// latestPerScope keeps only the highest version of each scope. The result is
// sorted by scope type and key so that downstream ordering is deterministic
// regardless of storage iteration order.
func latestPerScope(docs []models.ConfigDocument) []models.ConfigDocument {
	// version ties cannot occur under monotonic assignment; if one ever did,
	// the last-observed document wins
	byScope := make(map[models.ScopeID]models.ConfigDocument)
	for _, doc := range docs {
		if current, ok := byScope[doc.ScopeID()]; !ok || doc.Version >= current.Version {
			byScope[doc.ScopeID()] = doc
		}
	}

	latest := make([]models.ConfigDocument, 0, len(byScope))
	for _, doc := range byScope {
		latest = append(latest, doc)
	}

	sort.Slice(latest, func(i, j int) bool {
		if latest[i].ScopeType != latest[j].ScopeType {
			return latest[i].ScopeType < latest[j].ScopeType
		}
		return latest[i].ScopeKey < latest[j].ScopeKey
	})

	return latest
}
