package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/commerce-sync/internal/config"
)

func TestNewBatchSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		cfg           *config.SourceConfig
		expectedType  any
		errorContains string
	}{
		{
			name: "no source",
		},
		{
			name:         "file source",
			cfg:          &config.SourceConfig{Type: config.SourceTypeFile, File: &config.FileConfig{Dir: "/tmp/batches"}},
			expectedType: &FileSource{},
		},
		{
			name:         "api source",
			cfg:          &config.SourceConfig{Type: config.SourceTypeAPI, API: &config.APIConfig{Endpoint: "https://shop.example.com"}},
			expectedType: &APISource{},
		},
		{
			name:          "file source without settings",
			cfg:           &config.SourceConfig{Type: config.SourceTypeFile},
			errorContains: "file configuration is required",
		},
		{
			name:          "api source without endpoint",
			cfg:           &config.SourceConfig{Type: config.SourceTypeAPI, API: &config.APIConfig{}},
			errorContains: "api endpoint cannot be empty",
		},
		{
			name:          "unsupported source type",
			cfg:           &config.SourceConfig{Type: "ftp"},
			errorContains: "unsupported source type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source, err := NewBatchSource(tt.cfg)
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Nil(t, source)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			if tt.expectedType == nil {
				assert.Nil(t, source)
				return
			}
			assert.IsType(t, tt.expectedType, source)
		})
	}
}
