package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"stockconsole/internal/config"
	"stockconsole/internal/metrics"
	"stockconsole/internal/models"
	"stockconsole/internal/normalize"
)

var (
	// ErrUnauthorized means the upstream rejected the session token or the
	// login credentials.
	ErrUnauthorized = errors.New("upstream: unauthorized")
	// ErrUpstreamStatus marks any other non-2xx upstream response.
	ErrUpstreamStatus = errors.New("upstream: unexpected status")
)

// StatusError carries the upstream status and a truncated body.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Code == http.StatusUnauthorized
	}
	return target == ErrUpstreamStatus
}

// Resource is a list endpoint path relative to the base URL.
type Resource string

const (
	Warehouses   Resource = "/warehouses"
	Products     Resource = "/products"
	Inventory    Resource = "/inventory"
	StockHistory Resource = "/inventory/history"
	Suppliers    Resource = "/suppliers"
	Users        Resource = "/users"
)

func (r Resource) label() string { return strings.Trim(strings.ReplaceAll(string(r), "/", "_"), "_") }

// Client talks to the inventory REST API. It holds no session; callers pass
// one per request.
type Client struct {
	baseURL          string
	fallbackPrefixes []string
	httpClient       *http.Client
	metrics          *metrics.Metrics
}

// NewClient creates a new inventory API client
func NewClient(cfg config.UpstreamConfig, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		fallbackPrefixes: cfg.FallbackPaths,
		httpClient:       &http.Client{Timeout: timeout},
		metrics:          m,
	}
}

// makeRequest performs an HTTP request against the inventory API and returns
// the body of a 2xx response.
func (c *Client) makeRequest(ctx context.Context, method, path string, sess *models.Session, payload interface{}) ([]byte, error) {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sess != nil && sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(data)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet}
	}
	return data, nil
}

// List fetches the raw body of a list endpoint. When the primary path fails
// for any reason other than an authorization failure, each configured
// fallback prefix is tried in turn.
func (c *Client) List(ctx context.Context, sess models.Session, res Resource) ([]byte, error) {
	start := time.Now()
	paths := []string{string(res)}
	for _, prefix := range c.fallbackPrefixes {
		paths = append(paths, strings.TrimRight(prefix, "/")+string(res))
	}

	var lastErr error
	for i, path := range paths {
		data, err := c.makeRequest(ctx, http.MethodGet, path, &sess, nil)
		if err == nil {
			c.metrics.ObserveUpstream(res.label(), "ok", time.Since(start))
			return data, nil
		}
		lastErr = err
		if errors.Is(err, ErrUnauthorized) || ctx.Err() != nil {
			break
		}
		if i+1 < len(paths) {
			log.Printf("WARN: %s failed (%v), trying %s", path, err, paths[i+1])
		}
	}
	c.metrics.ObserveUpstream(res.label(), "error", time.Since(start))
	return nil, lastErr
}

var loginFields = normalize.Table{
	"token": {Paths: []string{"token", "accessToken", "access_token", "data.token"}},
	"user":  {Paths: []string{"user", "data.user"}},
	"error": {Paths: []string{"error", "message"}},
}

// Login exchanges credentials for an upstream token and user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, models.User, error) {
	start := time.Now()
	data, err := c.makeRequest(ctx, http.MethodPost, "/auth/login", nil, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		c.metrics.ObserveUpstream("auth_login", "error", time.Since(start))
		return "", models.User{}, err
	}
	c.metrics.ObserveUpstream("auth_login", "ok", time.Since(start))

	resp := gjson.ParseBytes(data)
	token := loginFields.String(resp, "token")
	if token == "" {
		if msg := loginFields.String(resp, "error"); msg != "" {
			return "", models.User{}, fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return "", models.User{}, fmt.Errorf("%w: login response carried no token", ErrUnauthorized)
	}

	var user models.User
	if u, ok := loginFields.Lookup(resp, "user"); ok && u.IsObject() {
		user = normalize.User(u)
	}
	return token, user, nil
}

// AdjustStock records a stock movement upstream.
func (c *Client) AdjustStock(ctx context.Context, sess models.Session, adj models.StockAdjustment) error {
	start := time.Now()
	_, err := c.makeRequest(ctx, http.MethodPost, "/inventory/adjust", &sess, adj)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveUpstream("inventory_adjust", outcome, time.Since(start))
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}
