// Package backup uploads saved projects to Supabase storage as an
// optional off-machine copy. Backups never block or fail a save: any
// upload problem is logged and dropped.
package backup

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/supabase-community/supabase-go"

	"blockpad-cli/project"
)

// DefaultBucket is the storage bucket backups land in.
const DefaultBucket = "project-backups"

// uploadTimeout bounds a single backup upload.
const uploadTimeout = 30 * time.Second

// Storage is the slice of the storage API the service uses.
type Storage interface {
	Upload(ctx context.Context, bucket, path string, data io.Reader) error
}

// Service uploads project snapshots after successful saves.
type Service struct {
	storage Storage
	bucket  string
	log     logrus.FieldLogger
}

// NewService creates a backup service. A nil storage yields a disabled
// service whose Backup is a no-op.
func NewService(storage Storage, bucket string, log logrus.FieldLogger) *Service {
	if bucket == "" {
		bucket = DefaultBucket
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Service{storage: storage, bucket: bucket, log: log}
}

// Enabled reports whether backups will actually be uploaded.
func (s *Service) Enabled() bool {
	return s.storage != nil
}

// Backup uploads one saved project snapshot. Fire-and-forget: errors
// are logged, never returned.
func (s *Service) Backup(filename string, content *project.Content) {
	if s.storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	path := time.Now().UTC().Format("2006-01-02") + "/" + filename
	if err := s.storage.Upload(ctx, s.bucket, path, bytes.NewReader(content.Data)); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("project backup upload failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"bucket": s.bucket,
		"path":   path,
		"bytes":  len(content.Data),
	}).Info("project backed up")
}

// SupabaseStorage adapts the supabase client to the Storage interface.
type SupabaseStorage struct {
	client *supabase.Client
}

// NewSupabaseStorage wraps a supabase client for backup uploads.
func NewSupabaseStorage(client *supabase.Client) *SupabaseStorage {
	return &SupabaseStorage{client: client}
}

// Upload sends the payload to the bucket at the given path.
func (s *SupabaseStorage) Upload(ctx context.Context, bucket, path string, data io.Reader) error {
	_, err := s.client.Storage.UploadFile(bucket, path, data)
	return err
}
