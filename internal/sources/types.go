package sources

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

// ErrBatchUnavailable is returned when a source has no batch for the store and kind
var ErrBatchUnavailable = errors.New("batch unavailable")

//go:generate mockgen -destination=mocks/mock_batch_source.go -package=mocks -source=types.go BatchSource

// BatchSource fetches the current batch of one entity kind for one store
type BatchSource interface {
	// FetchBatch returns a JSON array of records
	FetchBatch(ctx context.Context, storeID uuid.UUID, kind pkgsync.EntityKind) (json.RawMessage, error)
}
