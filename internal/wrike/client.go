package wrike

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultHost is used when no host override is configured.
	DefaultHost = "www.wrike.com"

	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 30 * time.Second

	// MaxBatchIDs is the largest ID list accepted by batch reads.
	MaxBatchIDs = 100
)

// BaseURL returns the API v4 root for a Wrike host.
func BaseURL(host string) string {
	if host == "" {
		host = DefaultHost
	}
	return "https://" + strings.TrimSuffix(host, "/") + "/api/v4"
}

// Client is a Wrike API client. It holds configuration only, so one
// instance can serve concurrent tool calls.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
	resolver   *IDResolver
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request and resolution diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new Wrike client for baseURL (see BaseURL).
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resolver = NewIDResolver(c, c.logger)
	return c
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	clone.resolver = NewIDResolver(&clone, c.logger)
	return &clone
}

// doRequest performs one HTTP request against the Wrike API.
func (c *Client) doRequest(ctx context.Context, method, path string, query *Query, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	target := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("wrike request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// fetch issues a request and unwraps the response envelope into T.
func fetch[T any](ctx context.Context, c *Client, method, path string, query *Query, body any) (T, error) {
	data, err := c.doRequest(ctx, method, path, query, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return Unwrap[T](data)
}

// first returns the single item of a one-element list response.
func first[T any](items []T, kind, id string) (*T, error) {
	if len(items) == 0 {
		return nil, &APIError{StatusCode: http.StatusNotFound, Code: "not_found", Description: fmt.Sprintf("%s %s not found", kind, id)}
	}
	return &items[0], nil
}

// resolveIfLegacy resolves id only when it is a numeric or permalink ID.
func (c *Client) resolveIfLegacy(ctx context.Context, id string, kind IDKind) (string, error) {
	id = strings.TrimSpace(id)
	if !IsLegacyID(id) {
		return id, nil
	}
	return c.resolver.Resolve(ctx, id, kind)
}

// ResolveID converts a legacy or permalink ID to its canonical form.
func (c *Client) ResolveID(ctx context.Context, id string, kind IDKind) (string, error) {
	return c.resolver.Resolve(ctx, id, kind)
}

// joinBatchIDs validates and comma-joins IDs for a batch read.
func joinBatchIDs(kind string, ids []string) (string, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return "", invalidArgument("at least one %s ID is required", kind)
	}
	if len(ids) > MaxBatchIDs {
		return "", invalidArgument("too many %s IDs: %d (max %d)", kind, len(ids), MaxBatchIDs)
	}
	return strings.Join(ids, ","), nil
}

// normalizeIDs trims IDs and drops empty ones.
func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
