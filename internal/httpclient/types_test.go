package httpclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stacklok/commerce-sync/internal/httpclient"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		statusCode    int
		url           string
		message       string
		wantError     string
		wantTemporary bool
	}{
		{
			name:       "not found",
			statusCode: 404,
			url:        "http://shop.example.com/stores/1/orders",
			message:    "Not Found",
			wantError:  "HTTP 404 for URL http://shop.example.com/stores/1/orders: Not Found",
		},
		{
			name:       "empty message",
			statusCode: 400,
			url:        "http://shop.example.com",
			wantError:  "HTTP 400 for URL http://shop.example.com: ",
		},
		{
			name:          "rate limited",
			statusCode:    429,
			url:           "http://shop.example.com",
			message:       "slow down",
			wantError:     "HTTP 429 for URL http://shop.example.com: slow down",
			wantTemporary: true,
		},
		{
			name:          "gateway timeout",
			statusCode:    504,
			url:           "http://shop.example.com",
			wantError:     "HTTP 504 for URL http://shop.example.com: ",
			wantTemporary: true,
		},
		{
			name:       "not implemented",
			statusCode: 501,
			url:        "http://shop.example.com",
			wantError:  "HTTP 501 for URL http://shop.example.com: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := httpclient.NewHTTPError(tt.statusCode, tt.url, tt.message)
			assert.Equal(t, tt.wantError, err.Error())
			assert.Equal(t, tt.wantTemporary, err.Temporary())
		})
	}
}
