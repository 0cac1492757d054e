package storage

import (
	"context"
	"testing"

	"github.com/daniyyer/kindle-dash/internal/config"
)

func TestNewClientSelectsLocalWithoutBucket(t *testing.T) {
	cfg := &config.Config{LocalDir: t.TempDir()}

	client, err := NewClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	defer client.Close()

	if client.Name() != "local" {
		t.Errorf("Expected local sink without bucket credentials, got %q", client.Name())
	}
}
