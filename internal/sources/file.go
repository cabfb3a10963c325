package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	pkgsync "github.com/stacklok/commerce-sync/internal/sync"
)

// FileSource reads batches from a directory tree
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir
func NewFileSource(dir string) (*FileSource, error) {
	if dir == "" {
		return nil, fmt.Errorf("file source directory cannot be empty")
	}
	return &FileSource{dir: dir}, nil
}

// Path returns the file holding the batch of kind for storeID
func (s *FileSource) Path(storeID uuid.UUID, kind pkgsync.EntityKind) string {
	return filepath.Join(s.dir, storeID.String(), kind.String()+".json")
}

// FetchBatch reads and returns the batch file
func (s *FileSource) FetchBatch(ctx context.Context, storeID uuid.UUID, kind pkgsync.EntityKind) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unsupported entity kind %q", kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(storeID, kind)
	//nolint:gosec // The path is built from the configured directory, a UUID and a known kind
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: file not found: %s", ErrBatchUnavailable, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return extractBatch(data, kind)
}
