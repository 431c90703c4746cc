// Package apiclient is the single point of outbound communication with the
// job-finder backend. It owns the base URL and the bearer-token lifecycle.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/audit"
	"github.com/jobfinder/dashboard-go/internal/config"
	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/nav"
	"github.com/jobfinder/dashboard-go/internal/token"
)

type Options struct {
	// BaseURL is the API URL including its prefix, e.g. http://host/api.
	BaseURL    string
	HTTPClient *http.Client
	Tokens     token.Store
	// TokenExpiryDays is used when SetToken is called with expiryDays <= 0.
	TokenExpiryDays int
	Navigator       nav.Navigator
	LoginRoute      string
}

type Client struct {
	baseURL     string
	http        *http.Client
	tokens      token.Store
	expiryDays  int
	navigator   nav.Navigator
	loginRoute  string
	mu          sync.RWMutex
	unauthHooks []func(ctx context.Context)
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		http:       opts.HTTPClient,
		tokens:     opts.Tokens,
		expiryDays: opts.TokenExpiryDays,
		navigator:  opts.Navigator,
		loginRoute: opts.LoginRoute,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.tokens == nil {
		c.tokens = token.NewMemoryStore()
	}
	if c.expiryDays <= 0 {
		c.expiryDays = config.DefaultTokenExpiryDays
	}
	if c.navigator == nil {
		c.navigator = nav.Discard
	}
	if c.loginRoute == "" {
		c.loginRoute = config.RouteLogin
	}
	return c
}

// OnUnauthorized registers fn to run after a 401 cleared the token.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unauthHooks = append(c.unauthHooks, fn)
}

// GetToken returns the persisted token, or "" when absent or unreadable.
func (c *Client) GetToken(ctx context.Context) string {
	tok, err := c.tokens.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read auth token")
		return ""
	}
	return tok
}

// SetToken persists tok for expiryDays, or the configured default when
// expiryDays <= 0.
func (c *Client) SetToken(ctx context.Context, tok string, expiryDays int) error {
	if expiryDays <= 0 {
		expiryDays = c.expiryDays
	}
	return c.tokens.Set(ctx, tok, time.Duration(expiryDays)*24*time.Hour)
}

func (c *Client) RemoveToken(ctx context.Context) error {
	return c.tokens.Remove(ctx)
}

const jsonContentType = "application/json"

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	if encoded := query.Encode(); encoded != "" {
		path = path + "?" + encoded
	}
	return c.do(ctx, http.MethodGet, path, nil, jsonContentType)
}

// Post sends body as JSON. A nil body is sent as an empty object.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.doJSON(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, jsonContentType)
}

// Upload posts form as multipart/form-data.
func (c *Client) Upload(ctx context.Context, path string, form *Form) (*Response, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return nil, apperrors.Internal("failed to encode upload").WithCause(err)
	}
	return c.do(ctx, http.MethodPost, path, body, contentType)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*Response, error) {
	if body == nil {
		body = struct{}{}
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Internal("failed to encode request body").WithCause(err)
	}
	return c.do(ctx, method, path, bytes.NewReader(b), jsonContentType)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.Internal("failed to build request").WithCause(err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if tok := c.GetToken(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).Msg("api request failed")
		return nil, apperrors.Network(config.MsgNetworkError, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	return c.handleResponse(ctx, method, path, resp)
}

func (c *Client) handleResponse(ctx context.Context, method, path string, resp *http.Response) (*Response, error) {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Network(config.MsgNetworkError, fmt.Errorf("read response body: %w", err))
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       b,
		JSON:       isJSON(resp.Header.Get("Content-Type")),
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return out, nil
	}

	data := out.parsed()
	appErr := apperrors.HTTP(resp.StatusCode, errorMessage(data), data)

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession(ctx, method, path)
	}

	return nil, appErr
}

// clearSession tears the session down after a 401, whichever call hit it.
func (c *Client) clearSession(ctx context.Context, method, path string) {
	if err := c.tokens.Remove(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear auth token after 401")
	}
	audit.Log(ctx, audit.Event{
		Type:    audit.EventAuthFailure,
		Details: map[string]interface{}{"method": method, "path": path},
	})

	c.mu.RLock()
	hooks := append([]func(context.Context){}, c.unauthHooks...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}

	c.navigator.Navigate(ctx, c.loginRoute)
}

func errorMessage(data any) string {
	if m, ok := data.(map[string]any); ok {
		if msg, ok := m["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return config.MsgServerError
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
