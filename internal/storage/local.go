package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalClient writes artifacts under a base directory on the local
// filesystem.
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a local sink rooted at baseDir.
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalClient{baseDir: baseDir}, nil
}

// Store writes the artifact to baseDir/key. The content type is implied by
// the file extension and ignored here.
func (l *LocalClient) Store(ctx context.Context, key string, data []byte, contentType string) error {
	filePath := filepath.Join(l.baseDir, filepath.FromSlash(key))

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &SinkWriteError{Sink: l.Name(), Key: key, Err: err}
		}
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return &SinkWriteError{Sink: l.Name(), Key: key, Err: err}
	}
	return nil
}

// Name identifies the sink
func (l *LocalClient) Name() string {
	return "local"
}

// Close is a no-op for local storage
func (l *LocalClient) Close() error {
	return nil
}
