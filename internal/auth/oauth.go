package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// Static errors for err113 compliance.
var (
	ErrNoCredentials = errors.New("no valid credentials available")
	ErrEmptyToken    = errors.New("token endpoint returned an empty access token")
)

// TokenManager hands out bearer tokens for API calls.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// OAuth2Config configures the client-credentials exchange.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string

	// HTTPClient carries the token request. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Cache enables token reuse. Without it every GetToken performs a fresh
	// exchange.
	Cache cdek.Cache
}

// OAuth2TokenManager obtains tokens with the OAuth2 client-credentials grant.
type OAuth2TokenManager struct {
	credentials clientcredentials.Config
	httpClient  *http.Client
	cache       cdek.Cache
	cacheKey    string
	store       *TokenStore
	mu          sync.Mutex
}

// NewOAuth2TokenManager creates a new OAuth2 token manager.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OAuth2TokenManager{
		credentials: clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: httpClient,
		cache:      config.Cache,
		cacheKey:   CacheKey(config.TokenURL, config.ClientID),
		store:      NewTokenStore(),
	}
}

// CacheKey derives the cache key for an account at a token endpoint. The
// secret is not part of the key.
func CacheKey(tokenURL, clientID string) string {
	sum := sha256.Sum256([]byte(tokenURL + "\x00" + clientID))

	return constants.TokenCacheKeyPrefix + hex.EncodeToString(sum[:])
}

// GetToken returns a bearer token. A token pinned with SetToken is used while
// valid; otherwise a cached token is reused when a cache is configured, and a
// fresh exchange is performed as a last resort.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	pinned := m.store.Get()
	if pinned.Valid() {
		return pinned.AccessToken, nil
	}

	if m.cache == nil {
		token, err := m.fetch(ctx)
		if err != nil {
			return "", err
		}

		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cached := m.lookup(ctx)
	if cached.Valid() {
		return cached.AccessToken, nil
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	m.remember(ctx, token)

	return token.AccessToken, nil
}

// RefreshToken performs a fresh exchange and, when a cache is configured,
// replaces the cached token.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.store.Clear()

	token, err := m.fetch(ctx)
	if err != nil {
		return err
	}

	if m.cache != nil {
		m.mu.Lock()
		m.remember(ctx, token)
		m.mu.Unlock()
	}

	return nil
}

// SetToken pins an access token until expiresAt.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Invalidate drops any pinned or cached token, e.g. after a 401.
func (m *OAuth2TokenManager) Invalidate(ctx context.Context) error {
	m.store.Clear()

	if m.cache == nil {
		return nil
	}

	err := m.cache.Delete(ctx, m.cacheKey)
	if err != nil {
		return fmt.Errorf("dropping cached token: %w", err)
	}

	return nil
}

func (m *OAuth2TokenManager) fetch(ctx context.Context) (*Token, error) {
	if m.credentials.ClientID == "" || m.credentials.ClientSecret == "" {
		return nil, ErrNoCredentials
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	issued, err := m.credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("client credentials exchange: %w", err)
	}

	if issued.AccessToken == "" {
		return nil, ErrEmptyToken
	}

	token := &Token{
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
		ExpiresAt:   issued.Expiry,
	}

	if !issued.Expiry.IsZero() {
		token.ExpiresIn = int(time.Until(issued.Expiry).Round(time.Second).Seconds())
	}

	if scope, ok := issued.Extra("scope").(string); ok {
		token.Scope = scope
	}

	if jti, ok := issued.Extra("jti").(string); ok {
		token.JTI = jti
	}

	return token, nil
}

func (m *OAuth2TokenManager) lookup(ctx context.Context) *Token {
	entry, err := m.cache.Get(ctx, m.cacheKey)
	if err != nil {
		return nil
	}

	var token Token

	err = json.Unmarshal(entry.Data, &token)
	if err != nil {
		return nil
	}

	return &token
}

// remember stores the token. Cache write failures are ignored.
func (m *OAuth2TokenManager) remember(ctx context.Context, token *Token) {
	if token.ExpiresAt.IsZero() {
		return
	}

	data, err := json.Marshal(token)
	if err != nil {
		return
	}

	_ = m.cache.Set(ctx, m.cacheKey, &cdek.CacheEntry{
		Data:      data,
		ExpiresAt: token.ExpiresAt.Add(-constants.TokenExpirationBuffer),
	})
}
