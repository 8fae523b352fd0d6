package auth_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/cdek/internal/auth"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name  string
		token *auth.Token
		want  bool
	}{
		{"nil", nil, false},
		{"no access token", &auth.Token{ExpiresAt: now.Add(time.Hour)}, false},
		{"no expiry", &auth.Token{AccessToken: "pinned"}, true},
		{"issued by CDEK", &auth.Token{
			AccessToken: "eyJhbGciOiJSUzI1NiJ9.payload.signature",
			TokenType:   "bearer",
			ExpiresIn:   3599,
			Scope:       "order:all payment:all",
			JTI:         "9adca50a-b3a8-4cba-8e5b-7c7aa3ab8f8e",
			ExpiresAt:   now.Add(3599 * time.Second),
		}, true},
		{"expired", &auth.Token{AccessToken: "old", ExpiresAt: now.Add(-time.Minute)}, false},
		{"inside expiration buffer", &auth.Token{AccessToken: "late", ExpiresAt: now.Add(15 * time.Second)}, false},
		{"just outside expiration buffer", &auth.Token{AccessToken: "ok", ExpiresAt: now.Add(45 * time.Second)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.token.Valid())
		})
	}
}

func TestToken_CachedForm(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	token := auth.Token{
		AccessToken: "cached",
		TokenType:   "bearer",
		Scope:       "order:all",
		ExpiresAt:   expiresAt,
	}

	data, err := json.Marshal(token)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expires_at":"2024-03-01T10:00:00Z"`)
	assert.NotContains(t, string(data), "jti")

	var decoded auth.Token
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, expiresAt.Equal(decoded.ExpiresAt))
	assert.Equal(t, "cached", decoded.AccessToken)
}

func TestTokenStore(t *testing.T) {
	t.Parallel()

	t.Run("starts empty", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, auth.NewTokenStore().Get())
	})

	t.Run("set then clear", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()
		store.Set(&auth.Token{AccessToken: "pinned", TokenType: "bearer"})

		got := store.Get()
		require.NotNil(t, got)
		assert.Equal(t, "pinned", got.AccessToken)

		store.Clear()
		assert.Nil(t, store.Get())
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()

		var wg sync.WaitGroup
		for _, access := range []string{"token-1", "token-2"} {
			wg.Add(2)

			go func() {
				defer wg.Done()

				for range 100 {
					store.Set(&auth.Token{AccessToken: access})
				}
			}()

			go func() {
				defer wg.Done()

				for range 100 {
					_ = store.Get()
				}
			}()
		}

		wg.Wait()

		final := store.Get()
		require.NotNil(t, final)
		assert.Contains(t, []string{"token-1", "token-2"}, final.AccessToken)
	})
}
