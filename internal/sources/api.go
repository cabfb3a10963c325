package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/stacklok/commerce-sync/internal/httpclient"
	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

// APISource fetches batches from a storefront export API
type APISource struct {
	httpClient httpclient.Client
	endpoint   string
}

// NewAPISource creates an APISource for the given base endpoint
func NewAPISource(endpoint string, httpClient httpclient.Client) (*APISource, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("api endpoint cannot be empty")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid api endpoint: %w", err)
	}
	if httpClient == nil {
		httpClient = httpclient.NewDefaultClient(0)
	}
	return &APISource{
		httpClient: httpClient,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
	}, nil
}

// URL returns the address of the batch of kind for storeID
func (s *APISource) URL(storeID uuid.UUID, kind pkgsync.EntityKind) string {
	return fmt.Sprintf("%s/stores/%s/%s", s.endpoint, storeID, url.PathEscape(kind.String()))
}

// FetchBatch fetches the batch and unwraps it from its envelope when needed
func (s *APISource) FetchBatch(ctx context.Context, storeID uuid.UUID, kind pkgsync.EntityKind) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unsupported entity kind %q", kind)
	}

	data, err := s.httpClient.Get(ctx, s.URL(storeID, kind))
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", ErrBatchUnavailable, err)
		}
		return nil, fmt.Errorf("failed to fetch %s of store %s: %w", kind, storeID, err)
	}

	return extractBatch(data, kind)
}

// extractBatch accepts a bare array or {"<kind>": [...]} and returns the array
func extractBatch(data []byte, kind pkgsync.EntityKind) (json.RawMessage, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s batch is not valid JSON", kind)
	}

	doc := gjson.ParseBytes(data)
	if doc.IsArray() {
		return json.RawMessage(doc.Raw), nil
	}

	if doc.IsObject() {
		inner := doc.Get(gjson.Escape(kind.String()))
		if inner.IsArray() {
			return json.RawMessage(inner.Raw), nil
		}
	}

	return nil, fmt.Errorf("%w: expected an array or an object with a %q array", pkgsync.ErrInvalidBatchShape, kind)
}
