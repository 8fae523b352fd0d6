// Package cdekclient provides the main entry point for creating CDEK API clients
package cdekclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/cdek/internal/client"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// New creates a new CDEK API client.
func New(ctx context.Context, config *cdek.Config) (cdek.Client, error) {
	if config == nil {
		return nil, cdek.ErrConfigRequired
	}

	normalized := *config

	// Normalize base URL override
	if normalized.BaseURL != "" {
		baseURL := strings.TrimSuffix(normalized.BaseURL, "/")
		if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
			baseURL = "https://" + baseURL
		}

		normalized.BaseURL = baseURL
	}

	client, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewFromEnv creates a client configured from CDEK_* environment variables.
func NewFromEnv(ctx context.Context) (cdek.Client, error) {
	config, err := cdek.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	return New(ctx, config)
}

// NewWithClientCredentials creates a client for the given environment and account.
func NewWithClientCredentials(ctx context.Context, env cdek.Environment, clientID, clientSecret string) (cdek.Client, error) {
	return New(ctx, &cdek.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Environment:  env,
	})
}

// NewWithTokenCache creates a client that reuses tokens through the given cache.
func NewWithTokenCache(ctx context.Context, env cdek.Environment, clientID, clientSecret string, cache *cdek.CacheConfig) (cdek.Client, error) {
	return New(ctx, &cdek.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Environment:  env,
		TokenCache:   cache,
	})
}
