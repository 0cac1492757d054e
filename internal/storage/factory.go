package storage

import (
	"context"
	"fmt"

	"github.com/daniyyer/kindle-dash/internal/config"
)

// NewClient creates the artifact sink selected by configuration: GCS when
// bucket credentials are present, the local filesystem otherwise.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	if cfg.RemoteSink() {
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS sink: %w", err)
		}
		return gcsClient, nil
	}

	localClient, err := NewLocalClient(cfg.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local sink: %w", err)
	}
	return localClient, nil
}
