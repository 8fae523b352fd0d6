package cdek

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthError(t *testing.T) {
	cause := errors.New("oauth2: cannot fetch token: 401 Unauthorized")
	err := &AuthError{Err: cause}

	assert.Equal(t, "authentication failed: oauth2: cannot fetch token: 401 Unauthorized", err.Error())
	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrRemoteAPI)
	assert.True(t, IsUnauthorized(err))

	assert.Equal(t, "authentication failed", (&AuthError{}).Error())
}

func TestValidationError(t *testing.T) {
	err := newValidationError("uuid", "is required")

	assert.Equal(t, "validation failed: uuid: is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrAuth)

	assert.Equal(t, "validation failed: broken", (&ValidationError{Message: "broken"}).Error())
}

func TestUnsupportedMethodError(t *testing.T) {
	err := &UnsupportedMethodError{Method: http.MethodPatch}

	assert.Equal(t, `unsupported HTTP method: "PATCH"`, err.Error())
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestRemoteAPIError_Is(t *testing.T) {
	tests := []struct {
		status       int
		notFound     bool
		conflict     bool
		unauthorized bool
	}{
		{status: http.StatusBadRequest},
		{status: http.StatusUnauthorized, unauthorized: true},
		{status: http.StatusNotFound, notFound: true},
		{status: http.StatusConflict, conflict: true},
		{status: http.StatusInternalServerError},
	}

	for _, testCase := range tests {
		t.Run(http.StatusText(testCase.status), func(t *testing.T) {
			var err error = &RemoteAPIError{StatusCode: testCase.status, Method: http.MethodGet, Path: "/orders"}

			wrapped := fmt.Errorf("getting order: %w", err)

			assert.ErrorIs(t, wrapped, ErrRemoteAPI)
			assert.Equal(t, testCase.notFound, IsNotFound(wrapped))
			assert.Equal(t, testCase.conflict, IsConflict(wrapped))
			assert.Equal(t, testCase.unauthorized, IsUnauthorized(wrapped))
			assert.NotErrorIs(t, wrapped, ErrAuth)
		})
	}
}

func TestRemoteAPIError_Error(t *testing.T) {
	err := &RemoteAPIError{StatusCode: 400, Method: "POST", Path: "/orders", Body: []byte(`{"errors":[]}`)}
	assert.Equal(t, `remote API error: POST /orders returned 400: {"errors":[]}`, err.Error())

	err = &RemoteAPIError{StatusCode: 502, Method: "GET", Path: "/location/cities"}
	assert.Equal(t, "remote API error: GET /location/cities returned 502", err.Error())
}

func TestRemoteAPIError_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []APIError
	}{
		{
			name: "top level",
			body: `{"errors":[{"code":"v2_bad_request","message":"Bad request"}]}`,
			want: []APIError{{Code: "v2_bad_request", Message: "Bad request"}},
		},
		{
			name: "per request",
			body: `{"requests":[{"state":"INVALID","errors":[{"code":"v2_field_is_empty","message":"[tariff_code] is empty"}]}]}`,
			want: []APIError{{Code: "v2_field_is_empty", Message: "[tariff_code] is empty"}},
		},
		{
			name: "not json",
			body: `<html>Bad Gateway</html>`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := &RemoteAPIError{StatusCode: http.StatusBadRequest, Body: []byte(testCase.body)}

			errs := err.Errors()
			if testCase.want == nil {
				assert.Empty(t, errs)

				return
			}

			require.Equal(t, testCase.want, errs)
			assert.Equal(t, testCase.want[0].Message+" (code: "+testCase.want[0].Code+")", errs[0].Error())
		})
	}
}

func TestErrorCategoriesAreDistinct(t *testing.T) {
	categorized := []error{
		&AuthError{Err: context.DeadlineExceeded},
		&ValidationError{Field: "uuid", Message: "is required"},
		&UnsupportedMethodError{Method: "PUT"},
		&RemoteAPIError{StatusCode: 500},
	}
	categories := []error{ErrAuth, ErrValidation, ErrUnsupportedMethod, ErrRemoteAPI}

	for i, err := range categorized {
		for j, category := range categories {
			assert.Equal(t, i == j, errors.Is(err, category), "%T vs %v", err, category)
		}
	}
}
