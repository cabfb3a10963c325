package sources

import (
	"fmt"

	"github.com/stacklok/commerce-sync/internal/config"
	"github.com/stacklok/commerce-sync/internal/httpclient"
)

// NewBatchSource creates the source described by cfg.
// A nil cfg yields a nil source: due retries are then left in place.
func NewBatchSource(cfg *config.SourceConfig) (BatchSource, error) {
	if cfg == nil {
		return nil, nil
	}

	switch cfg.Type {
	case config.SourceTypeFile:
		if cfg.File == nil {
			return nil, fmt.Errorf("file configuration is required for source type %s", config.SourceTypeFile)
		}
		source, err := NewFileSource(cfg.File.Dir)
		if err != nil {
			return nil, err
		}
		return source, nil
	case config.SourceTypeAPI:
		if cfg.API == nil {
			return nil, fmt.Errorf("api configuration is required for source type %s", config.SourceTypeAPI)
		}
		source, err := NewAPISource(cfg.API.Endpoint, httpclient.NewDefaultClient(cfg.API.GetTimeout()))
		if err != nil {
			return nil, err
		}
		return source, nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
}
