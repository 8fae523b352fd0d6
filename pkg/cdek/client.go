package cdek

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"

	"github.com/fivetwenty-io/cdek/internal/constants"
)

// Environment selects the CDEK installation a client talks to.
type Environment string

const (
	// EnvironmentTest is the education sandbox (api.edu.cdek.ru).
	EnvironmentTest Environment = "test"

	// EnvironmentProduction is the live API (api.cdek.ru).
	EnvironmentProduction Environment = "production"
)

// ParseEnvironment converts a user-supplied name into an Environment.
func ParseEnvironment(name string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "test", "edu", "sandbox":
		return EnvironmentTest, nil
	case "production", "prod":
		return EnvironmentProduction, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so environments can be read from env vars and flags.
func (e *Environment) UnmarshalText(text []byte) error {
	parsed, err := ParseEnvironment(string(text))
	if err != nil {
		return err
	}

	*e = parsed

	return nil
}

// BaseURL returns the API root for the environment.
func (e Environment) BaseURL() string {
	if e == EnvironmentProduction {
		return constants.ProductionBaseURL
	}

	return constants.TestBaseURL
}

// TariffClient calculates delivery cost.
type TariffClient interface {
	CalculateTariff(ctx context.Context, request *TariffRequest) (*Response, error)
}

// OrdersClient manages the order lifecycle.
type OrdersClient interface {
	CreateOrder(ctx context.Context, request *DeliveryRequest) (*Response, error)
	GetOrder(ctx context.Context, selector OrderSelector) (*Response, error)
	DeleteOrder(ctx context.Context, uuid string) (*Response, error)
}

// LocationClient looks up reference locations.
type LocationClient interface {
	ListCities(ctx context.Context, filter *CityFilter) (*Response, error)
}

// PreAlertClient notifies the carrier about orders handed off at a shipment point.
type PreAlertClient interface {
	CreatePreAlert(ctx context.Context, preAlert *PreAlert) (*Response, error)
	GetPreAlert(ctx context.Context, uuid string) (*Response, error)
}

// Client is the CDEK API facade: one method per remote operation. Methods
// return the server's JSON untouched in a Response.
type Client interface {
	TariffClient
	OrdersClient
	LocationClient
	PreAlertClient

	// GetToken returns a bearer token the way the next request would obtain it.
	GetToken(ctx context.Context) (string, error)

	// Close releases connections held by a shared token cache.
	Close() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a cdek.Client.
//
// ClientID, ClientSecret and Environment identify the account and are fixed
// for the lifetime of a client: a client never switches between the test and
// production installations.
//
// # Tokens
//
// By default every request performs its own client-credentials exchange. Set
// TokenCache to reuse tokens until shortly before they expire; the cache can
// be process-local (memory) or shared between processes (NATS KV, Redis).
//
// # Timeouts
//
// Cancellation and per-call deadlines come from the context passed to each
// method. HTTPTimeout bounds a single HTTP exchange and defaults to 30s.
type Config struct {
	// ClientID: OAuth2 client ID (the CDEK "Account").
	ClientID string
	// ClientSecret: OAuth2 client secret (the CDEK "Secure password").
	ClientSecret string
	// Environment: test or production. The zero value means test.
	Environment Environment
	// BaseURL: overrides the environment's API root, e.g. for a proxy or an
	// httptest server. Trailing slashes are trimmed.
	BaseURL string

	// HTTPTimeout: timeout for a single HTTP exchange.
	HTTPTimeout time.Duration
	// HTTPClient: optional transport override. Its Timeout is kept as is.
	HTTPClient *http.Client
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger. The library is silent without one.
	Logger Logger

	// TokenCache: enables token reuse. Nil keeps the fetch-per-request behavior.
	TokenCache *CacheConfig
}

// APIEndpoint returns the base URL requests are resolved against.
func (c *Config) APIEndpoint() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}

	return c.Environment.BaseURL()
}

// Validate checks that the configuration can authenticate.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrCredentialsRequired
	}

	switch c.Environment {
	case "", EnvironmentTest, EnvironmentProduction:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEnvironment, c.Environment)
	}

	return nil
}

type envConfig struct {
	ClientID      string        `env:"CDEK_CLIENT_ID"`
	ClientSecret  string        `env:"CDEK_CLIENT_SECRET"`
	Environment   Environment   `env:"CDEK_ENVIRONMENT"    envDefault:"test"`
	BaseURL       string        `env:"CDEK_BASE_URL"`
	HTTPTimeout   time.Duration `env:"CDEK_HTTP_TIMEOUT"   envDefault:"30s"`
	UserAgent     string        `env:"CDEK_USER_AGENT"`
	Debug         bool          `env:"CDEK_DEBUG"`
	TokenCache    string        `env:"CDEK_TOKEN_CACHE"    envDefault:"none"`
	NATSURL       string        `env:"CDEK_NATS_URL"`
	NATSBucket    string        `env:"CDEK_NATS_BUCKET"`
	RedisAddr     string        `env:"CDEK_REDIS_ADDR"`
	RedisPassword string        `env:"CDEK_REDIS_PASSWORD"`
	RedisDB       int           `env:"CDEK_REDIS_DB"`
}

// ConfigFromEnv builds a Config from CDEK_* environment variables.
func ConfigFromEnv() (*Config, error) {
	var raw envConfig

	err := env.Parse(&raw)
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	config := &Config{
		ClientID:     raw.ClientID,
		ClientSecret: raw.ClientSecret,
		Environment:  raw.Environment,
		BaseURL:      raw.BaseURL,
		HTTPTimeout:  raw.HTTPTimeout,
		UserAgent:    raw.UserAgent,
		Debug:        raw.Debug,
	}

	cacheType := CacheType(strings.ToLower(raw.TokenCache))
	switch cacheType {
	case CacheTypeNone, "":
	case CacheTypeMemory:
		config.TokenCache = &CacheConfig{Type: CacheTypeMemory}
	case CacheTypeNATS:
		config.TokenCache = &CacheConfig{
			Type: CacheTypeNATS,
			NATS: &NATSKVConfig{URL: raw.NATSURL, Bucket: raw.NATSBucket},
		}
	case CacheTypeRedis:
		config.TokenCache = &CacheConfig{
			Type:  CacheTypeRedis,
			Redis: &RedisConfig{Addr: raw.RedisAddr, Password: raw.RedisPassword, DB: raw.RedisDB},
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, raw.TokenCache)
	}

	return config, nil
}
