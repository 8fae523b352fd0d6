package http

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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/cdek/internal/auth"
	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// Client dispatches authenticated requests to the CDEK API. It supports GET,
// POST and DELETE; any other verb is rejected before a token is requested.
type Client struct {
	baseURL      string
	retryClient  *retryablehttp.Client
	tokenManager auth.TokenManager
	logger       cdek.Logger
	debug        bool
	userAgent    string
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger cdek.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryableClient shares a transport, typically with the token manager.
func WithRetryableClient(client *retryablehttp.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.retryClient = client
		}
	}
}

// NewClient creates a dispatcher rooted at baseURL. A nil tokenManager sends
// requests without an Authorization header.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.retryClient == nil {
		client.retryClient = NewRetryableClient(nil, constants.DefaultHTTPTimeout, client.logger, client.debug)
	}

	return client
}

// NewRetryableClient builds the transport shared by the dispatcher and the
// token exchange. Retries are disabled: every call makes exactly one attempt
// and 5xx responses are returned to the caller as is.
func NewRetryableClient(base *http.Client, timeout time.Duration, logger cdek.Logger, debug bool) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.CheckRetry = noRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = nil

	if base != nil {
		client.HTTPClient = base
	} else if timeout > 0 {
		client.HTTPClient.Timeout = timeout
	}

	if logger != nil && debug {
		client.Logger = &leveledLogger{logger: logger}
	}

	return client
}

func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Execute is the single dispatch path: GET encodes payload as the query
// string, POST sends it as a JSON body, DELETE sends neither. Null fields are
// removed from payload first.
func (c *Client) Execute(ctx context.Context, method, path string, payload cdek.Document) (*Response, error) {
	req := &Request{Method: method, Path: path}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		req.Query = encodeQuery(payload)
	case http.MethodPost:
		if payload != nil {
			req.Body = payload
		}
	}

	return c.Do(ctx, req)
}

// Do performs an HTTP request.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	method := strings.ToUpper(req.Method)
	if !supportedMethod(method) {
		return nil, &cdek.UnsupportedMethodError{Method: req.Method}
	}

	fullURL, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var body []byte

	if method == http.MethodPost && req.Body != nil {
		body, err = encodeBody(req.Body)
		if err != nil {
			return nil, err
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, fullURL, bodyOrNil(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			return nil, &cdek.AuthError{Err: err}
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": method,
			"url":    fullURL,
			"body":   string(body),
		})
	}

	start := time.Now()

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"body":     string(respBody),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.handleUnauthorized(ctx, httpResp.StatusCode)

		return resp, &cdek.RemoteAPIError{
			StatusCode: httpResp.StatusCode,
			Body:       respBody,
			Method:     method,
			Path:       req.Path,
		}
	}

	return resp, nil
}

// Get performs a GET request with params encoded as the query string.
func (c *Client) Get(ctx context.Context, path string, params cdek.Document) (*Response, error) {
	return c.Execute(ctx, http.MethodGet, path, params)
}

// Post performs a POST request. A cdek.Document is normalized, []byte is sent
// verbatim, anything else is JSON encoded.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	parsed, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid request URL %s%s: %w", c.baseURL, path, err)
	}

	if len(query) > 0 {
		merged := parsed.Query()
		for key, values := range query {
			for _, value := range values {
				merged.Add(key, value)
			}
		}

		parsed.RawQuery = merged.Encode()
	}

	return parsed.String(), nil
}

// handleUnauthorized drops a cached token the server no longer accepts so the
// next call performs a fresh exchange.
func (c *Client) handleUnauthorized(ctx context.Context, status int) {
	if status != http.StatusUnauthorized || c.tokenManager == nil {
		return
	}

	invalidator, ok := c.tokenManager.(interface {
		Invalidate(ctx context.Context) error
	})
	if !ok {
		return
	}

	err := invalidator.Invalidate(ctx)
	if err != nil && c.logger != nil {
		c.logger.Warn("Failed to drop rejected token", map[string]interface{}{"error": err.Error()})
	}
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
		return true
	default:
		return false
	}
}

func encodeBody(body interface{}) ([]byte, error) {
	switch typed := body.(type) {
	case []byte:
		return typed, nil
	case cdek.Document:
		return cdek.Serialize(typed)
	case map[string]interface{}:
		return cdek.Serialize(cdek.Document(typed))
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}

		return data, nil
	}
}

func bodyOrNil(body []byte) interface{} {
	if body == nil {
		return nil
	}

	return bytes.NewReader(body)
}
