// Package supabase wraps the Supabase Auth REST endpoints used by the API.
package supabase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/memoapi/internal/config"
	"github.com/memoapi/internal/domain"
	"github.com/memoapi/internal/metrics"
)

const (
	signupPath    = "/auth/v1/signup"
	tokenPath     = "/auth/v1/token"
	userPath      = "/auth/v1/user"
	logoutPath    = "/auth/v1/logout"
	authorizePath = "/auth/v1/authorize"
)

// Client calls the identity provider. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *resty.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewClient creates a client for the configured Supabase project
func NewClient(cfg config.SupabaseConfig, m *metrics.Metrics, logger *slog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.URL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		metrics: m,
		logger:  logger,
	}
}

// Signup registers an email/password user; the confirmation mail links back to redirectURL
func (c *Client) Signup(ctx context.Context, email, password, redirectURL string) Result {
	body := map[string]any{
		"email":    email,
		"password": password,
		"options": map[string]any{
			"email_redirect_to": redirectURL,
		},
	}
	return c.call(ctx, "signup", c.http.R().SetBody(body), http.MethodPost, signupPath)
}

// LoginWithPassword exchanges credentials for a session using the password grant
func (c *Client) LoginWithPassword(ctx context.Context, email, password string) Result {
	req := c.http.R().
		SetQueryParam("grant_type", "password").
		SetBody(map[string]any{
			"email":    email,
			"password": password,
		})
	return c.call(ctx, "login", req, http.MethodPost, tokenPath)
}

// ResolveUser resolves an access token to the provider's user object
func (c *Client) ResolveUser(ctx context.Context, accessToken string) Result {
	return c.call(ctx, "resolve_user", c.withToken(accessToken), http.MethodGet, userPath)
}

// Logout revokes the session behind accessToken
func (c *Client) Logout(ctx context.Context, accessToken string) Result {
	return c.call(ctx, "logout", c.withToken(accessToken), http.MethodPost, logoutPath)
}

// GitHubSignInURL builds the provider's GitHub OAuth entry point. No network call.
func (c *Client) GitHubSignInURL(redirectURL string) string {
	return fmt.Sprintf("%s%s?provider=github&redirect_to=%s&scopes=user:email",
		c.baseURL, authorizePath, url.QueryEscape(redirectURL))
}

func (c *Client) withToken(accessToken string) *resty.Request {
	req := c.http.R()
	if accessToken != "" {
		req.SetAuthToken(accessToken)
	}
	return req
}

// call executes the request. Transport failures become a synthetic 500 result; no retries.
func (c *Client) call(ctx context.Context, operation string, req *resty.Request, method, path string) Result {
	start := time.Now()

	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		wrapped := domain.WrapNetworkOperation(operation, err)
		c.logger.ErrorContext(ctx, "identity provider request failed", "operation", operation, "error", wrapped)
		c.metrics.ObserveProvider(operation, http.StatusInternalServerError, time.Since(start))
		return Result{
			Status: http.StatusInternalServerError,
			Body:   map[string]any{"error": fmt.Sprintf("Network error: %v", err)},
		}
	}

	c.metrics.ObserveProvider(operation, resp.StatusCode(), time.Since(start))
	c.logger.DebugContext(ctx, "identity provider response", "operation", operation, "status", resp.StatusCode())

	return Result{
		Status: resp.StatusCode(),
		Body:   decodeBody(resp.Body()),
	}
}
