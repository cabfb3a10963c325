package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

func writeBatch(t *testing.T, dir string, storeID uuid.UUID, kind pkgsync.EntityKind, content string) {
	t.Helper()
	storeDir := filepath.Join(dir, storeID.String())
	require.NoError(t, os.MkdirAll(storeDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, kind.String()+".json"), []byte(content), 0o600))
}

func TestNewFileSource(t *testing.T) {
	t.Parallel()

	_, err := NewFileSource("")
	require.Error(t, err)

	source, err := NewFileSource("/var/lib/batches")
	require.NoError(t, err)
	storeID := uuid.MustParse("8d5c1bb4-0d3a-4f55-9a38-5d3f0f3f1f7e")
	assert.Equal(t,
		"/var/lib/batches/8d5c1bb4-0d3a-4f55-9a38-5d3f0f3f1f7e/orders.json",
		source.Path(storeID, pkgsync.KindOrders))
}

func TestFileSourceFetchBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	storeID := uuid.New()
	writeBatch(t, dir, storeID, pkgsync.KindOrders, `[{"id": 1}]`)
	writeBatch(t, dir, storeID, pkgsync.KindProducts, `{"products": [{"id": 2}], "next_page": null}`)
	writeBatch(t, dir, storeID, pkgsync.KindCustomers, `{"id": 3}`)
	writeBatch(t, dir, storeID, pkgsync.KindCategories, `not json`)

	source, err := NewFileSource(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		storeID uuid.UUID
		kind    pkgsync.EntityKind
		want    string
		wantErr error
	}{
		{name: "bare array", storeID: storeID, kind: pkgsync.KindOrders, want: `[{"id": 1}]`},
		{name: "wrapped array", storeID: storeID, kind: pkgsync.KindProducts, want: `[{"id": 2}]`},
		{name: "object without array", storeID: storeID, kind: pkgsync.KindCustomers, wantErr: pkgsync.ErrInvalidBatchShape},
		{name: "unknown store", storeID: uuid.New(), kind: pkgsync.KindOrders, wantErr: ErrBatchUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			batch, err := source.FetchBatch(context.Background(), tt.storeID, tt.kind)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(batch))
		})
	}

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()
		_, err := source.FetchBatch(context.Background(), storeID, pkgsync.KindCategories)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid JSON")
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := source.FetchBatch(context.Background(), storeID, pkgsync.EntityKind("../secrets"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported entity kind")
	})
}
