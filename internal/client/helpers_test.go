package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// recordedRequest is an API call seen by fakeCDEK.
type recordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Body          []byte
	Authorization string
}

// fakeCDEK serves the token endpoint under /v2/oauth/token and hands every
// other request to handler.
type fakeCDEK struct {
	server      *httptest.Server
	tokenCalls  int32
	tokenStatus int

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeCDEK(t *testing.T, handler http.HandlerFunc) *fakeCDEK {
	t.Helper()

	fake := &fakeCDEK{tokenStatus: http.StatusOK}

	fake.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/v2/oauth/token" {
			fake.serveToken(t, writer, request)

			return
		}

		body, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Method:        request.Method,
			Path:          request.URL.Path,
			RawQuery:      request.URL.RawQuery,
			Body:          body,
			Authorization: request.Header.Get("Authorization"),
		})
		fake.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")

		if handler == nil {
			_, _ = writer.Write([]byte(`{}`))

			return
		}

		handler(writer, request)
	}))
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeCDEK) serveToken(t *testing.T, writer http.ResponseWriter, request *http.Request) {
	t.Helper()

	n := atomic.AddInt32(&f.tokenCalls, 1)

	assert.Equal(t, http.MethodPost, request.Method)
	assert.Equal(t, "client_credentials", request.URL.Query().Get("grant_type"))

	writer.Header().Set("Content-Type", "application/json")

	if f.tokenStatus != http.StatusOK {
		writer.WriteHeader(f.tokenStatus)
		_, _ = writer.Write([]byte(`{"error":"invalid_client","error_description":"Bad credentials"}`))

		return
	}

	_ = json.NewEncoder(writer).Encode(map[string]interface{}{
		"access_token": "token-" + strconv.Itoa(int(n)),
		"token_type":   "bearer",
		"expires_in":   3599,
		"scope":        "order:all payment:all",
		"jti":          "jti-" + strconv.Itoa(int(n)),
	})
}

func (f *fakeCDEK) config() *cdek.Config {
	return &cdek.Config{
		ClientID:     "account",
		ClientSecret: "secure-password",
		Environment:  cdek.EnvironmentTest,
		BaseURL:      f.server.URL + "/v2",
	}
}

func (f *fakeCDEK) apiRequests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeCDEK) lastRequest(t *testing.T) recordedRequest {
	t.Helper()

	requests := f.apiRequests()
	if !assert.NotEmpty(t, requests) {
		t.FailNow()
	}

	return requests[len(requests)-1]
}

func (f *fakeCDEK) tokenExchanges() int32 {
	return atomic.LoadInt32(&f.tokenCalls)
}

func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var decoded map[string]interface{}

	err := json.Unmarshal(body, &decoded)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return decoded
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(status)
		_, _ = io.Copy(writer, strings.NewReader(body))
	}
}
