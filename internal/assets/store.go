// Package assets is the asset-store collaborator: it accepts an image blob
// and returns a stable URL. Uploads are keyed by slot identity (the form
// header or a specific question), so re-uploading to the same slot
// overwrites the same object and the slot's URL always reflects its own
// latest completed upload, never an out-of-order one.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/minio/minio-go/v7"
)

// Store uploads a blob for the given slot and returns its public URL.
type Store interface {
	Upload(ctx context.Context, slot string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, slot string) error
}

type minioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *slog.Logger
}

// NewMinioStore creates a Store backed by a MinIO/S3 bucket. baseURL is the
// public prefix under which objects in the bucket are served.
func NewMinioStore(client *minio.Client, bucket, baseURL string, logger *slog.Logger) Store {
	return &minioStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *minioStore) Upload(ctx context.Context, slot string, reader io.Reader, size int64, contentType string) (string, error) {
	// One object per slot: a later upload for the same slot overwrites the
	// earlier object under the same stable URL.
	objectName := path.Join("slots", slot)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("asset upload failed", "slot", slot, "error", err)
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	url := s.baseURL + "/" + s.bucket + "/" + objectName
	s.logger.Info("asset uploaded", "slot", slot, "url", url)
	return url, nil
}

func (s *minioStore) Delete(ctx context.Context, slot string) error {
	return s.client.RemoveObject(ctx, s.bucket, path.Join("slots", slot), minio.RemoveObjectOptions{})
}

// ErrStorageDisabled is returned when no object storage backend is configured.
var ErrStorageDisabled = errors.New("asset storage is not configured")

// DisabledStore rejects every upload; used when no object storage is
// configured so the rest of the service can still run.
type DisabledStore struct{}

func (DisabledStore) Upload(ctx context.Context, slot string, reader io.Reader, size int64, contentType string) (string, error) {
	return "", ErrStorageDisabled
}

func (DisabledStore) Delete(ctx context.Context, slot string) error {
	return ErrStorageDisabled
}
