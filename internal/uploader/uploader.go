package uploader

import (
	"context"

	cfg "simgen/internal/config"
)

// Uploader ships a finished case directory to external storage.
type Uploader interface {
	Enabled() bool
	UploadDir(ctx context.Context, dir string) (string, error)
}

// NoopUploader is used when no storage backend is configured.
type NoopUploader struct{}

func (n NoopUploader) Enabled() bool {
	return false
}

func (n NoopUploader) UploadDir(ctx context.Context, dir string) (string, error) {
	return "", nil
}

// New picks the configured backend. GCS wins when both are enabled.
func New(storage cfg.StorageConfig) (Uploader, error) {
	if !storage.CloudEnabled() {
		return NoopUploader{}, nil
	}
	if storage.GCS.Enabled {
		return NewGCS(storage.GCS)
	}
	return NewS3(storage.S3)
}
