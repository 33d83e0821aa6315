package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/internal/utils"
	"github.com/MKhiriev/mn-config/models"
)

type httpConfigAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPConfigAdapter constructs an HTTP/REST implementation of
// [ConfigClient]. It normalises and validates the base URL and configures the
// underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if httpAddress is empty or cannot be parsed as a valid URL.
func NewHTTPConfigAdapter(httpAddress string, requestTimeout time.Duration, logger *logger.Logger) (ConfigClient, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(httpAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &httpConfigAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Resolve implements [ConfigClient]. It GETs
// /api/mn-config/{componentKey} with the context encoded as query parameters.
func (h *httpConfigAdapter) Resolve(ctx context.Context, rctx models.ResolveContext, componentKey string) (models.Value, error) {
	var value models.Value

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(contextQueryParams(rctx)).
		SetResult(&value).
		Get("/api/mn-config/" + url.PathEscape(componentKey))
	if err != nil {
		return nil, fmt.Errorf("resolve request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return value, nil
}

// ResolveAll implements [ConfigClient]. It GETs /api/mn-config.
func (h *httpConfigAdapter) ResolveAll(ctx context.Context, rctx models.ResolveContext) (map[string]models.Value, error) {
	var resolved map[string]models.Value

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(contextQueryParams(rctx)).
		SetResult(&resolved).
		Get("/api/mn-config")
	if err != nil {
		return nil, fmt.Errorf("resolve all request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resolved, nil
}

// History implements [ConfigClient]. It GETs
// /api/mn-config/history/{componentKey}.
func (h *httpConfigAdapter) History(ctx context.Context, tenant, env, componentKey string) ([]models.ConfigDocument, error) {
	var docs []models.ConfigDocument

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(identityQueryParams(tenant, env)).
		SetResult(&docs).
		Get("/api/mn-config/history/" + url.PathEscape(componentKey))
	if err != nil {
		return nil, fmt.Errorf("history request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return docs, nil
}

// Upsert implements [ConfigClient]. It PUTs the request body to
// /api/mn-config/{componentKey} and returns the server-assigned version.
func (h *httpConfigAdapter) Upsert(ctx context.Context, componentKey string, req models.UpsertRequest) (int64, error) {
	var result models.UpsertResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Put("/api/mn-config/" + url.PathEscape(componentKey))
	if err != nil {
		return 0, fmt.Errorf("upsert request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	return result.Version, nil
}

// DeleteComponent implements [ConfigClient]. It DELETEs
// /api/mn-config/{componentKey}.
func (h *httpConfigAdapter) DeleteComponent(ctx context.Context, tenant, env, componentKey string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(identityQueryParams(tenant, env)).
		Delete("/api/mn-config/" + url.PathEscape(componentKey))
	if err != nil {
		return fmt.Errorf("delete component request: %w", err)
	}
	return mapHTTPError(resp)
}

// DeleteAll implements [ConfigClient]. It DELETEs /api/mn-config.
func (h *httpConfigAdapter) DeleteAll(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/mn-config")
	if err != nil {
		return fmt.Errorf("delete all request: %w", err)
	}
	return mapHTTPError(resp)
}

// Health implements [ConfigClient]. It GETs /health.
func (h *httpConfigAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	return mapHTTPError(resp)
}

func contextQueryParams(rctx models.ResolveContext) map[string]string {
	params := make(map[string]string, 4)
	if rctx.Tenant != "" {
		params["tenant"] = rctx.Tenant
	}
	if rctx.Env != "" {
		params["env"] = rctx.Env
	}
	if rctx.Route != "" {
		params["route"] = rctx.Route
	}
	if rctx.Page != "" {
		params["page"] = rctx.Page
	}
	return params
}

func identityQueryParams(tenant, env string) map[string]string {
	params := make(map[string]string, 2)
	if tenant != "" {
		params["tenant"] = tenant
	}
	if env != "" {
		params["env"] = env
	}
	return params
}
