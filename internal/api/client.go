// Package api is the transport client for the DIY Visual Finder backend.
// It wraps every outbound request in a uniform JSON envelope and
// normalizes transport failures and non-2xx responses into a single
// error type, RequestError. It performs exactly one network call per
// invocation: no retries, no caching, and no client-side timeout —
// cancellation belongs to the caller's context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"diyfinder/internal/logging"
)

// RequestError is the single error kind surfaced by the client, covering
// both transport failures (request never reached a handler, malformed
// response body) and application-level failures (non-2xx status).
// StatusCode is zero for transport failures.
type RequestError struct {
	Message    string
	StatusCode int
	err        error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.err }

// errorBody is the best-effort shape of a non-2xx response. The backend
// is FastAPI, which reports errors as {"detail": ...}; message and error
// are accepted for forward compatibility with other deployments.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Error   string `json:"error"`
}

// Client talks to one backend instance.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *zap.Logger
}

// NewClient creates a client for the backend at baseURL, e.g.
// "http://localhost:8000". A trailing slash is tolerated.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     logging.Get("api"),
	}
}

// do issues one request and decodes the 2xx response body into out.
// Any failure comes back as a *RequestError.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: fmt.Sprintf("encoding request: %v", err), err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("building request: %v", err), err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method), zap.String("endpoint", endpoint),
			zap.String("req", reqID), zap.Error(err))
		return &RequestError{Message: err.Error(), err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("reading response: %v", err), err: err}
	}

	c.log.Debug("request",
		zap.String("method", method), zap.String("endpoint", endpoint),
		zap.String("req", reqID), zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{
			Message:    errorMessage(data, resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &RequestError{Message: fmt.Sprintf("parsing response: %v", err), err: err}
		}
	}
	return nil
}

// errorMessage extracts a human-readable message from a non-2xx body,
// falling back to a generic status line when the body is unparseable or
// carries no known field.
func errorMessage(data []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil {
		for _, msg := range []string{eb.Message, eb.Detail, eb.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("HTTP error: status %d", status)
}

// Login authenticates the user.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", Credentials{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. Registration alone does not establish
// a session; callers follow a successful registration with Login.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddItem stores a new inventory item from its photo.
func (c *Client) AddItem(ctx context.Context, item AddItemRequest) (*AddItemResponse, error) {
	var resp AddItemResponse
	if err := c.do(ctx, http.MethodPost, "/api/items/add", item, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserItems lists the user's full inventory.
func (c *Client) UserItems(ctx context.Context, username string) (*ItemsResponse, error) {
	var resp ItemsResponse
	if err := c.do(ctx, http.MethodGet, "/api/items/"+url.PathEscape(username), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search runs a visual similarity search over the user's inventory.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.do(ctx, http.MethodPost, "/api/search", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Chat sends one natural-language question about the inventory.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the backend root endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
