// Package writer contains the SyncWriter interface and its PostgreSQL implementation,
// the transactional, idempotent upsert of one batch of one entity kind.
package writer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

//go:generate mockgen -destination=mocks/mock_sync_writer.go -package=mocks -source=writer.go SyncWriter

// SyncWriter persists a batch of storefront records for a store.
type SyncWriter interface {
	// Upsert validates batch, merges the valid records into the entity tables of
	// kind in one transaction and records the attempt in a sync log.
	// It returns pkgsync.ErrInvalidBatchShape when batch is not a JSON array and a
	// *pkgsync.SyncFailedError when the transaction was rolled back.
	Upsert(
		ctx context.Context,
		storeID uuid.UUID,
		kind pkgsync.EntityKind,
		batch json.RawMessage,
		opts ...UpsertOption,
	) (*pkgsync.Result, error)
}

// UpsertOption configures a single Upsert call
type UpsertOption func(*upsertOptions)

type upsertOptions struct {
	syncType  string
	syncLogID uuid.UUID
}

// WithSyncType overrides the sync type recorded in the sync log, for example
// "webhook:orders". It defaults to the entity kind.
func WithSyncType(syncType string) UpsertOption {
	return func(o *upsertOptions) {
		if syncType != "" {
			o.syncType = syncType
		}
	}
}

// WithSyncLogID reuses an existing running sync log instead of opening a new
// one. It is used when a claimed retry is executed.
func WithSyncLogID(id uuid.UUID) UpsertOption {
	return func(o *upsertOptions) {
		o.syncLogID = id
	}
}
