// Package api is the thin REST client for the PFA data-management server.
// Every method is a single request/response exchange: responses replace
// component-local state in the callers, and there is no retry discipline.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/eutimioliusbel/PFA2.2-sub004/internal/logging"
)

// defaultTimeout bounds every request; the server parses audit queries and
// validates imports synchronously, so this is generous.
const defaultTimeout = 60 * time.Second

// SupportedServerConstraint is the semver range of server versions this
// client is built against.
const SupportedServerConstraint = ">=2.2.0 <3.0.0"

// Client talks to the PFA server on behalf of one organization.
type Client struct {
	baseURL      string
	token        string
	organization string
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithOrganization sets the tenant scope sent with every request.
func WithOrganization(org string) Option {
	return func(c *Client) { c.organization = org }
}

// New creates a Client for the given server base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token (after interactive login).
func (c *Client) SetToken(token string) {
	c.token = token
}

// Health fetches the server health and version report.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.getJSON(ctx, "/health", nil, &health); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &health, nil
}

// CheckServerVersion verifies the server version satisfies
// SupportedServerConstraint. Returns ErrUnsupportedServer on mismatch.
func (c *Client) CheckServerVersion(ctx context.Context) error {
	health, err := c.Health(ctx)
	if err != nil {
		return err
	}

	ver, err := semver.NewVersion(health.Version)
	if err != nil {
		return fmt.Errorf("parse server version %q: %w", health.Version, err)
	}

	constraint, err := semver.NewConstraint(SupportedServerConstraint)
	if err != nil {
		return fmt.Errorf("parse version constraint: %w", err)
	}

	if !constraint.Check(ver) {
		return fmt.Errorf("%w: server %s, client supports %s",
			ErrUnsupportedServer, health.Version, SupportedServerConstraint)
	}

	return nil
}

// ListEntities returns the master entities of the organization.
func (c *Client) ListEntities(ctx context.Context) ([]EntityInfo, error) {
	var wrapper struct {
		Entities []EntityInfo `json:"entities"`
	}
	if err := c.getJSON(ctx, "/api/v1/entities", nil, &wrapper); err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	return wrapper.Entities, nil
}

// ListRecords fetches the full ordered record sequence for one entity.
// The server defines the order; the client preserves it.
func (c *Client) ListRecords(ctx context.Context, entity string) ([]Record, error) {
	var wrapper struct {
		Records []Record `json:"records"`
	}
	path := "/api/v1/masters/" + url.PathEscape(entity)
	if err := c.getJSON(ctx, path, nil, &wrapper); err != nil {
		return nil, fmt.Errorf("list %s records: %w", entity, err)
	}
	return wrapper.Records, nil
}

// GetRecord fetches a single record by entity and id.
func (c *Client) GetRecord(ctx context.Context, entity, id string) (Record, error) {
	var record Record
	path := "/api/v1/masters/" + url.PathEscape(entity) + "/" + url.PathEscape(id)
	if err := c.getJSON(ctx, path, nil, &record); err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", entity, id, err)
	}
	return record, nil
}

// SearchAudit submits a free-text audit query. Natural-language parsing is
// entirely server-side; the client just displays whatever comes back.
func (c *Client) SearchAudit(ctx context.Context, query AuditQuery) ([]AuditEntry, error) {
	var wrapper struct {
		Entries []AuditEntry `json:"entries"`
	}
	if err := c.postJSON(ctx, "/api/v1/audit/search", query, &wrapper); err != nil {
		return nil, fmt.Errorf("audit search: %w", err)
	}
	return wrapper.Entries, nil
}

// ListWebhooks returns the organization's webhook subscriptions.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	var wrapper struct {
		Webhooks []Webhook `json:"webhooks"`
	}
	if err := c.getJSON(ctx, "/api/v1/webhooks", nil, &wrapper); err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	return wrapper.Webhooks, nil
}

// UpdateWebhook replaces one webhook subscription.
func (c *Client) UpdateWebhook(ctx context.Context, hook Webhook) (*Webhook, error) {
	var updated Webhook
	path := "/api/v1/webhooks/" + url.PathEscape(hook.ID)
	if err := c.putJSON(ctx, path, hook, &updated); err != nil {
		return nil, fmt.Errorf("update webhook %s: %w", hook.ID, err)
	}
	return &updated, nil
}

// ValidateImport uploads file content for a dry-run validation of an import
// into the given entity. Nothing is persisted server-side beyond the staged
// job identified by the returned JobID.
func (c *Client) ValidateImport(ctx context.Context, entity string, content []byte) (*ImportValidation, error) {
	var validation ImportValidation
	path := "/api/v1/imports/" + url.PathEscape(entity) + "/validate"
	if err := c.postRaw(ctx, path, "text/csv", content, &validation); err != nil {
		return nil, fmt.Errorf("validate import: %w", err)
	}
	return &validation, nil
}

// CommitImport commits a previously validated import job.
func (c *Client) CommitImport(ctx context.Context, jobID string) (*ImportResult, error) {
	var result ImportResult
	path := "/api/v1/imports/" + url.PathEscape(jobID) + "/commit"
	if err := c.postJSON(ctx, path, nil, &result); err != nil {
		return nil, fmt.Errorf("commit import %s: %w", jobID, err)
	}
	return &result, nil
}

// Rollback reverts a record to an earlier version.
func (c *Client) Rollback(ctx context.Context, entity, id string, version int) (*RollbackResult, error) {
	var result RollbackResult
	path := "/api/v1/masters/" + url.PathEscape(entity) + "/" + url.PathEscape(id) + "/rollback"
	body := struct {
		Version int `json:"version"`
	}{Version: version}
	if err := c.postJSON(ctx, path, body, &result); err != nil {
		return nil, fmt.Errorf("rollback %s/%s to v%d: %w", entity, id, version, err)
	}
	return &result, nil
}

// getJSON performs a GET and decodes the 200 response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// postJSON performs a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// putJSON performs a PUT with a JSON body and decodes the response into out.
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// postRaw performs a POST with an opaque body and decodes the response into out.
func (c *Client) postRaw(ctx context.Context, path, contentType string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, out)
}

// do executes the request with auth and tenant headers, maps non-2xx
// responses to *APIError, and decodes successful bodies into out.
func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.organization != "" {
		req.Header.Set("X-Organization", c.organization)
	}
	if traceID := logging.TraceIDFromContext(req.Context()); traceID != "" {
		req.Header.Set("X-Trace-Id", traceID)
	}

	logger := logging.FromContext(req.Context())
	logger.Debug().
		Str("component", "api").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseError decodes the server's error envelope, falling back to the raw
// body when the envelope is absent.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error, Details: envelope.Details}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
}
