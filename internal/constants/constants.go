package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API base URLs.
const (
	// ProductionBaseURL is the CDEK v2 production API.
	ProductionBaseURL = "https://api.cdek.ru/v2"

	// TestBaseURL is the CDEK v2 education (sandbox) API.
	TestBaseURL = "https://api.edu.cdek.ru/v2"
)

// API path constants.
const (
	// APIPathToken is the OAuth2 token endpoint with the client-credentials grant pre-selected.
	APIPathToken = "/oauth/token?grant_type=client_credentials"

	// APIPathTariff is the tariff calculator endpoint.
	APIPathTariff = "/calculator/tariff"

	// APIPathOrders is the orders collection endpoint.
	APIPathOrders = "/orders"

	// APIPathCities is the city lookup endpoint.
	APIPathCities = "/location/cities"

	// APIPathPreAlert is the pre-alert collection endpoint.
	APIPathPreAlert = "/prealert"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Content types and headers.
const (
	// ContentTypeJSON is the media type for JSON bodies.
	ContentTypeJSON = "application/json"

	// DefaultUserAgent is sent when the caller does not configure one.
	DefaultUserAgent = "cdek-go/1.0"
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second

	// TokenCacheKeyPrefix prefixes cache keys holding bearer tokens.
	TokenCacheKeyPrefix = "cdek.token."
)

// Cache defaults.
const (
	// DefaultCacheSize is the default maximum number of entries in a memory cache.
	DefaultCacheSize = 64

	// DefaultNATSBucket is the JetStream key-value bucket used for shared tokens.
	DefaultNATSBucket = "cdek_tokens"

	// DefaultRedisPrefix namespaces token keys in Redis.
	DefaultRedisPrefix = "cdek:"
)

// Order defaults.
const (
	// DefaultOrderType is the "online store" order type.
	DefaultOrderType = 1

	// DefaultPackageComment is used when a package is added without a comment.
	DefaultPackageComment = "Package"

	// DateTimeLayout formats planned and tariff dates as ISO-8601 with a numeric zone offset.
	DateTimeLayout = "2006-01-02T15:04:05-0700"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)
