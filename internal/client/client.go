// Package client is the single funnel for calls to the membership backend. It
// assembles headers from the credential store, serialises bodies and normalises
// every outcome into a Response or an *Error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/credentials"
	"github.com/creatorhub/memberkit/internal/observability"
	"github.com/creatorhub/memberkit/internal/persona"
)

const contentTypeJSON = "application/json"

// Config holds executor settings.
type Config struct {
	// BaseURL is the fixed origin every endpoint is relative to.
	BaseURL string
	// Timeout bounds a whole call. Zero keeps the transport default.
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Dependencies bundles the collaborators of the executor.
type Dependencies struct {
	Session  *credentials.Session
	Resolver *persona.Resolver
	Logger   *zap.Logger
	Metrics  *observability.Metrics
}

// Client executes Descriptors against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *credentials.Session
	resolver   *persona.Resolver
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// New builds a Client. Session is required; Resolver defaults to one over Session.
func New(cfg Config, deps Dependencies) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("api base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if deps.Session == nil {
		return nil, errors.New("credential session is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := deps.Resolver
	if resolver == nil {
		resolver = persona.NewResolver(deps.Session, logger)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		session:    deps.Session,
		resolver:   resolver,
		logger:     logger.Named("api"),
		metrics:    deps.Metrics,
	}, nil
}

// BaseURL returns the configured origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Prepare builds the outgoing request without sending it.
//
// Header precedence: JSON defaults, then the bearer token and persona headers for
// authenticated calls, then caller headers (last write wins), and finally the JSON
// Content-Type and Accept are reasserted so callers cannot replace them.
func (c *Client) Prepare(ctx context.Context, d Descriptor) (*http.Request, error) {
	headers := http.Header{}
	headers.Set("Content-Type", contentTypeJSON)
	headers.Set("Accept", contentTypeJSON)

	if d.RequiresAuth {
		token, ok, err := c.session.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read session token: %w", err)
		}
		if !ok {
			return nil, newAuthRequiredError()
		}
		headers.Set("Authorization", "Bearer "+token)

		personaHeaders, err := c.resolver.Headers(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve persona headers: %w", err)
		}
		for k, v := range personaHeaders {
			headers[k] = v
		}
	}

	for k, v := range d.Headers {
		headers.Set(k, v)
	}
	headers.Set("Content-Type", contentTypeJSON)
	headers.Set("Accept", contentTypeJSON)

	var body io.Reader
	if d.Data != nil {
		payload, err := json.Marshal(d.Data)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, d.method(), c.url(d.Endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = headers
	return req, nil
}

// Do sends d and returns the 2xx response. Failures are *Error values: KindAuthRequired
// before any network activity, KindHTTP for non-2xx replies and KindNetwork when no
// reply was obtained. Do never retries, caches or writes to the credential store.
func (c *Client) Do(ctx context.Context, d Descriptor) (*Response, error) {
	req, err := c.Prepare(ctx, d)
	if err != nil {
		c.recordFailure(d, err)
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		netErr := newNetworkError(err)
		c.recordFailure(d, netErr)
		return nil, netErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := newNetworkError(err)
		c.recordFailure(d, netErr)
		return nil, netErr
	}
	elapsed := time.Since(start)
	c.metrics.RecordRequest(d.path(), req.Method, resp.StatusCode, elapsed)

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := newHTTPError(resp.StatusCode, errorMessage(contentType, body), body)
		c.recordFailure(d, httpErr)
		return nil, httpErr
	}

	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("endpoint", d.Endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed))

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Header:      resp.Header,
		Body:        body,
	}, nil
}

func (c *Client) url(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

func (c *Client) recordFailure(d Descriptor, err error) {
	kind := KindOf(err)
	if kind == "" {
		kind = "local"
	}
	c.metrics.RecordError(d.path(), d.method(), string(kind))

	fields := []zap.Field{
		zap.String("method", d.method()),
		zap.String("endpoint", d.Endpoint),
		zap.String("kind", string(kind)),
		zap.Error(err),
	}
	if status, ok := StatusOf(err); ok {
		fields = append(fields, zap.Int("status", status))
	}
	c.logger.Warn("api request failed", fields...)
}
