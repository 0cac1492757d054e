package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
)

// GCSClient writes artifacts to a Google Cloud Storage bucket.
type GCSClient struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a GCS sink for the given bucket.
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
	}, nil
}

// Store uploads the artifact under the fixed object key. The short cache
// lifetime lets display devices poll for the refreshed image.
func (g *GCSClient) Store(ctx context.Context, key string, data []byte, contentType string) error {
	obj := g.client.Bucket(g.bucket).Object(key)

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "max-age=60"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return &SinkWriteError{Sink: g.Name(), Key: key, Err: err}
	}
	if err := writer.Close(); err != nil {
		return &SinkWriteError{Sink: g.Name(), Key: key, Err: err}
	}
	return nil
}

// Name identifies the sink
func (g *GCSClient) Name() string {
	return "gcs"
}

// Close closes the underlying GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}
