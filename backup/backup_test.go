package backup

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"blockpad-cli/project"
)

type mockStorage struct {
	uploads []string
	err     error
}

func (m *mockStorage) Upload(ctx context.Context, bucket, path string, data io.Reader) error {
	if m.err != nil {
		return m.err
	}
	m.uploads = append(m.uploads, bucket+"/"+path)
	return nil
}

func TestService_DisabledWithoutStorage(t *testing.T) {
	// Arrange
	service := NewService(nil, "", nil)

	// Assert
	if service.Enabled() {
		t.Error("Expected service without storage to be disabled")
	}

	// Act: must be a safe no-op
	service.Backup("Game.sb3", &project.Content{Data: []byte("x")})
}

func TestService_UploadsDatedSnapshot(t *testing.T) {
	// Arrange
	storage := &mockStorage{}
	service := NewService(storage, "", nil)

	// Act
	service.Backup("Game.sb3", &project.Content{Data: []byte("payload")})

	// Assert
	if len(storage.uploads) != 1 {
		t.Fatalf("Expected one upload, got %d", len(storage.uploads))
	}
	if !strings.HasPrefix(storage.uploads[0], DefaultBucket+"/") {
		t.Errorf("Expected default bucket, got %s", storage.uploads[0])
	}
	if !strings.HasSuffix(storage.uploads[0], "/Game.sb3") {
		t.Errorf("Expected filename-suffixed path, got %s", storage.uploads[0])
	}
}

func TestService_UploadFailureSwallowed(t *testing.T) {
	// Arrange
	storage := &mockStorage{err: errors.New("network down")}
	service := NewService(storage, "backups", nil)

	// Act / Assert: failure must not escape
	service.Backup("Game.sb3", &project.Content{Data: []byte("payload")})
}
