package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials      = errors.New("no client credentials configured, use 'cdek login' or set CDEK_CLIENT_ID and CDEK_CLIENT_SECRET")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrUnknownOutput      = errors.New("unknown output format")
	ErrUnknownCacheType   = errors.New("unknown token cache type")
	ErrEmptyClientSecret  = errors.New("client secret must not be empty")
	ErrOrderFileRequired  = errors.New("--file flag is required")
	ErrPlannedDateInvalid = errors.New("planned date must be RFC 3339 (e.g. 2024-05-01T10:00:00+03:00)")
)

// Required field errors.
var (
	ErrShipmentPointRequired = errors.New("--shipment-point flag is required")
	ErrTariffCodeRequired    = errors.New("--tariff flag is required")
	ErrOrderRefRequired      = errors.New("at least one of --order-uuid, --cdek-number or --im-number is required")
)

// File system errors.
var (
	ErrNotRegularFile = errors.New("path is not a regular file")
)
