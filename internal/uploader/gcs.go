package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cfg "simgen/internal/config"
	"simgen/internal/util"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// GCSUploader uploads case directories to Google Cloud Storage.
type GCSUploader struct {
	cfg    cfg.GCSConfig
	client *storage.Client
}

// NewGCS constructs an uploader from GCS configuration.
func NewGCS(c cfg.GCSConfig) (*GCSUploader, error) {
	if !c.Enabled {
		return &GCSUploader{cfg: c}, nil
	}
	var opts []option.ClientOption
	if path := strings.TrimSpace(c.CredentialsFile); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	return &GCSUploader{cfg: c, client: client}, nil
}

// Enabled reports whether GCS uploads are configured.
func (u *GCSUploader) Enabled() bool {
	return u.cfg.Enabled
}

// UploadDir uploads a case directory and returns its GCS URL prefix.
func (u *GCSUploader) UploadDir(ctx context.Context, dir string) (string, error) {
	if !u.cfg.Enabled {
		return "", nil
	}
	if u.client == nil {
		return "", errors.New("gcs uploader is not initialized")
	}
	bucket := u.client.Bucket(u.cfg.Bucket)
	base, err := uploadCase(ctx, dir, u.cfg.Prefix, func(ctx context.Context, obj caseObject) error {
		return putGCS(ctx, bucket, obj)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("gs://%s/%s", u.cfg.Bucket, base), nil
}

func putGCS(ctx context.Context, bucket *storage.BucketHandle, obj caseObject) error {
	file, err := os.Open(obj.path)
	if err != nil {
		return err
	}
	defer util.CloseWithErr(file, "gcs upload file")

	writer := bucket.Object(obj.key).NewWriter(ctx)
	writer.ContentType = obj.contentType
	if _, err := io.Copy(writer, file); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}
