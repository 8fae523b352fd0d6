package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
	"github.com/fivetwenty-io/cdek/pkg/cdekclient"
)

// newClient builds an API client from flags, the config file and the environment.
func newClient(ctx context.Context) (cdek.Client, error) {
	config, err := clientConfig(loadConfig())
	if err != nil {
		return nil, err
	}

	return cdekclient.New(ctx, config)
}

// closeClient releases the client's token cache connections. A failure is
// logged to errOut and never fails the command.
func closeClient(client io.Closer, errOut io.Writer) {
	err := client.Close()
	if err != nil {
		NewLogger(errOut, false).Warn("Failed to close client", map[string]interface{}{"error": err.Error()})
	}
}

func clientConfig(config *Config) (*cdek.Config, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, constants.ErrNoCredentials
	}

	env, err := cdek.ParseEnvironment(config.Environment)
	if err != nil {
		return nil, err
	}

	tokenCache, err := tokenCacheConfig(config)
	if err != nil {
		return nil, err
	}

	verbose := viper.GetBool(KeyVerbose)

	return &cdek.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Environment:  env,
		BaseURL:      config.BaseURL,
		Debug:        verbose,
		Logger:       NewLogger(os.Stderr, verbose),
		TokenCache:   tokenCache,
	}, nil
}

func tokenCacheConfig(config *Config) (*cdek.CacheConfig, error) {
	switch cdek.CacheType(strings.ToLower(config.TokenCache)) {
	case "", cdek.CacheTypeNone:
		return nil, nil //nolint:nilnil
	case cdek.CacheTypeMemory:
		return cdek.DefaultCacheConfig(), nil
	case cdek.CacheTypeNATS:
		return &cdek.CacheConfig{
			Type: cdek.CacheTypeNATS,
			NATS: &cdek.NATSKVConfig{URL: config.NATSURL},
		}, nil
	case cdek.CacheTypeRedis:
		return &cdek.CacheConfig{
			Type:  cdek.CacheTypeRedis,
			Redis: &cdek.RedisConfig{Addr: config.RedisAddr},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", constants.ErrUnknownCacheType, config.TokenCache)
	}
}
