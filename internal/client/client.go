package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fivetwenty-io/cdek/internal/auth"
	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/internal/http"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// Client implements the cdek.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	tokenCache   cdek.Cache
	baseURL      string
	logger       cdek.Logger

	// Resource clients
	tariffs   *TariffsClient
	orders    *OrdersClient
	locations *LocationsClient
	preAlerts *PreAlertsClient
}

// New creates a CDEK API client. The token manager and the dispatcher share
// one transport.
func New(ctx context.Context, config *cdek.Config) (*Client, error) {
	if config == nil {
		return nil, cdek.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	transport := http.NewRetryableClient(config.HTTPClient, timeout, config.Logger, config.Debug)

	var tokenCache cdek.Cache

	if config.TokenCache != nil {
		tokenCache, err = cdek.NewCacheFromConfig(ctx, config.TokenCache)
		if err != nil {
			return nil, fmt.Errorf("creating token cache: %w", err)
		}
	}

	tokenManager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:     config.APIEndpoint() + constants.APIPathToken,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		HTTPClient:   transport.StandardClient(),
		Cache:        tokenCache,
	})

	httpOpts := append(createHTTPClientOptions(config), http.WithRetryableClient(transport))
	httpClient := http.NewClient(config.APIEndpoint(), tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		tokenCache:   tokenCache,
		baseURL:      config.APIEndpoint(),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	if config.Logger != nil {
		config.Logger.Debug("CDEK client created", map[string]interface{}{
			"endpoint":    client.baseURL,
			"environment": string(config.Environment),
			"token_cache": tokenCache != nil,
		})
	}

	return client, nil
}

// NewWithTokenManager creates a client with a custom token manager. Credentials
// in config are not required.
func NewWithTokenManager(config *cdek.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, cdek.ErrConfigRequired
	}

	httpClient := http.NewClient(config.APIEndpoint(), tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint(),
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *cdek.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	return httpOpts
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// CalculateTariff implements cdek.Client.
func (c *Client) CalculateTariff(ctx context.Context, request *cdek.TariffRequest) (*cdek.Response, error) {
	return c.tariffs.CalculateTariff(ctx, request)
}

// CreateOrder implements cdek.Client.
func (c *Client) CreateOrder(ctx context.Context, request *cdek.DeliveryRequest) (*cdek.Response, error) {
	return c.orders.CreateOrder(ctx, request)
}

// GetOrder implements cdek.Client.
func (c *Client) GetOrder(ctx context.Context, selector cdek.OrderSelector) (*cdek.Response, error) {
	return c.orders.GetOrder(ctx, selector)
}

// DeleteOrder implements cdek.Client.
func (c *Client) DeleteOrder(ctx context.Context, uuid string) (*cdek.Response, error) {
	return c.orders.DeleteOrder(ctx, uuid)
}

// ListCities implements cdek.Client.
func (c *Client) ListCities(ctx context.Context, filter *cdek.CityFilter) (*cdek.Response, error) {
	return c.locations.ListCities(ctx, filter)
}

// CreatePreAlert implements cdek.Client.
func (c *Client) CreatePreAlert(ctx context.Context, preAlert *cdek.PreAlert) (*cdek.Response, error) {
	return c.preAlerts.CreatePreAlert(ctx, preAlert)
}

// GetPreAlert implements cdek.Client.
func (c *Client) GetPreAlert(ctx context.Context, uuid string) (*cdek.Response, error) {
	return c.preAlerts.GetPreAlert(ctx, uuid)
}

// GetToken returns a bearer token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", cdek.ErrNoTokenManager
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		return "", &cdek.AuthError{Err: err}
	}

	return token, nil
}

// Close releases the token cache backend.
func (c *Client) Close() error {
	closer, ok := c.tokenCache.(io.Closer)
	if !ok {
		return nil
	}

	err := closer.Close()
	if err != nil {
		return fmt.Errorf("closing token cache: %w", err)
	}

	return nil
}

func (c *Client) initializeResourceClients() {
	c.tariffs = NewTariffsClient(c.httpClient)
	c.orders = NewOrdersClient(c.httpClient)
	c.locations = NewLocationsClient(c.httpClient)
	c.preAlerts = NewPreAlertsClient(c.httpClient)
}

// toResponse converts a dispatcher reply. Errors are wrapped with the
// operation name and keep their category for errors.Is.
func toResponse(operation string, resp *http.Response, err error) (*cdek.Response, error) {
	if err != nil {
		var validation *cdek.ValidationError
		if errors.As(err, &validation) {
			return nil, err
		}

		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return &cdek.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Headers,
		Body:       json.RawMessage(resp.Body),
	}, nil
}
