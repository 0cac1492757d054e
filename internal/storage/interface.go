package storage

import (
	"context"
	"fmt"
)

// SinkWriteError reports that the final artifact could not be persisted.
type SinkWriteError struct {
	Sink string
	Key  string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("%s sink: failed to store %s: %v", e.Sink, e.Key, e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}

// Client is a write-only artifact sink. The pipeline produces one artifact
// per run and stores it under a fixed key; nothing is ever read back.
type Client interface {
	// Store persists data under key with the given content type
	Store(ctx context.Context, key string, data []byte, contentType string) error

	// Name identifies the sink in logs and errors
	Name() string

	// Close releases the sink's resources
	Close() error
}
