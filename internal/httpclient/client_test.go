package httpclient_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/commerce-sync/internal/httpclient"
)

// newTestServer creates a test server with keep-alives disabled so that
// closing it does not disturb parallel tests sharing the transport.
func newTestServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	return server
}

func TestGetReturnsBody(t *testing.T) {
	t.Parallel()

	var headers http.Header
	var method string
	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		method = r.Method
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer server.Close()

	data, err := httpclient.NewDefaultClient(0).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), data)
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, httpclient.UserAgent, headers.Get("User-Agent"))
	assert.Equal(t, "application/json", headers.Get("Accept"))
}

func TestGetHTTPErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantTries  int32
	}{
		{name: "not found is not retried", statusCode: http.StatusNotFound, wantTries: 1},
		{name: "unauthorized is not retried", statusCode: http.StatusUnauthorized, wantTries: 1},
		{name: "service unavailable is retried", statusCode: http.StatusServiceUnavailable, wantTries: 2},
		{name: "too many requests is retried", statusCode: http.StatusTooManyRequests, wantTries: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var tries atomic.Int32
			server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				tries.Add(1)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(http.StatusText(tt.statusCode)))
			}))
			defer server.Close()

			client := httpclient.NewDefaultClient(5*time.Second, httpclient.WithMaxTries(2))
			_, err := client.Get(context.Background(), server.URL)
			require.Error(t, err)

			var httpErr *httpclient.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
			assert.Contains(t, err.Error(), fmt.Sprintf("HTTP %d", tt.statusCode))
			assert.Equal(t, tt.wantTries, tries.Load())
		})
	}
}

func TestGetRecoversFromTemporaryError(t *testing.T) {
	t.Parallel()

	var tries atomic.Int32
	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if tries.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	data, err := httpclient.NewDefaultClient(5*time.Second).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), data)
	assert.Equal(t, int32(2), tries.Load())
}

func TestGetNetworkErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		url           string
		errorContains string
	}{
		{name: "invalid URL scheme", url: "://invalid-url", errorContains: "failed to create request"},
		{name: "unreachable host", url: "http://127.0.0.1:1", errorContains: "failed to execute request"},
		{name: "empty URL", url: "", errorContains: "failed to execute request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := httpclient.NewDefaultClient(5*time.Second).Get(context.Background(), tt.url)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestGetRespectsContext(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := httpclient.NewDefaultClient(30*time.Second).Get(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetSizeLimit(t *testing.T) {
	t.Parallel()

	const limit = 1024

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr bool
	}{
		{
			name: "exactly at the limit",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write(make([]byte, limit))
			},
		},
		{
			name: "declared length over the limit",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Length", fmt.Sprintf("%d", limit+1))
				_, _ = w.Write(make([]byte, limit+1))
			},
			wantErr: true,
		},
		{
			name: "streamed body over the limit",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.(http.Flusher).Flush()
				for range 4 {
					_, _ = w.Write(make([]byte, limit/2))
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(tt.handler)
			defer server.Close()

			client := httpclient.NewDefaultClient(5*time.Second, httpclient.WithMaxResponseSize(limit))
			data, err := client.Get(context.Background(), server.URL)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "exceeds maximum allowed size")
				return
			}
			require.NoError(t, err)
			assert.Len(t, data, limit)
		})
	}
}
