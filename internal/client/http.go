package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	applog "github.com/janisto/huma-feed/internal/platform/logging"
)

const (
	userAgent    = "huma-feed-client"
	acceptHeader = "application/json"
)

// HTTPClient implements API over the v1 REST endpoints.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *HTTPClient) {
		c.token = token
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// NewHTTPClient creates a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/v1".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if target == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	}
	return decodeProblem(ctx, method, path, resp)
}

func decodeProblem(ctx context.Context, method, path string, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, apiErr)
		apiErr.Status = resp.StatusCode
	}
	applog.LogWarn(ctx, "api request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)
	return apiErr
}

func (c *HTTPClient) CreatePost(ctx context.Context, content string) (*Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodPost, "/posts", map[string]string{"content": content}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GlobalFeed(ctx context.Context) ([]Entry, error) {
	return c.feed(ctx, "/feed")
}

func (c *HTTPClient) UserFeed(ctx context.Context, userID string) ([]Entry, error) {
	return c.feed(ctx, "/users/"+url.PathEscape(userID)+"/posts")
}

func (c *HTTPClient) feed(ctx context.Context, path string) ([]Entry, error) {
	entries := []Entry{}
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	path := "/profile"
	if userID != "" {
		path = "/users/" + url.PathEscape(userID) + "/profile"
	}
	var p Profile
	if err := c.do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type profileUpdate struct {
	FullName string  `json:"fullName"`
	Bio      *string `json:"bio"`
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, fullName string, bio *string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodPatch, "/profile", profileUpdate{FullName: fullName, Bio: bio}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ProvisionProfile(ctx context.Context, fullName string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodPost, "/profile", map[string]string{"fullName": fullName}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

var _ API = (*HTTPClient)(nil)
