package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pimapi/internal/config"
)

// minioStorage implements Storage using an S3-compatible backend (MinIO, AWS
// S3, etc.). Objects live under a single key prefix and are addressed by
// their public bucket URL. Safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client   *minio.Client
	bucket   string
	prefix   string
	endpoint string
	secure   bool
}

// NewMinIO creates a new S3-compatible storage client backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStorage{
		client:   cli,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		endpoint: cfg.Endpoint,
		secure:   cfg.UseSSL,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// Upload streams the content into the bucket and returns the object URL.
func (m *minioStorage) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := m.objectKey(filename)
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return m.objectURL(key), nil
}

// Delete removes the object addressed by the URL. Only the last path segment
// is trusted; the key is rebuilt under the configured prefix, mirroring how
// URLs are minted in Upload.
func (m *minioStorage) Delete(ctx context.Context, fileURL string) error {
	name, err := fileNameFromURL(fileURL)
	if err != nil {
		return err
	}
	return m.client.RemoveObject(ctx, m.bucket, m.objectKey(name), minio.RemoveObjectOptions{})
}

func (m *minioStorage) objectKey(filename string) string {
	if m.prefix == "" {
		return filename
	}
	return m.prefix + "/" + filename
}

func (m *minioStorage) objectURL(key string) string {
	scheme := "http"
	if m.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.endpoint, m.bucket, key)
}

// fileNameFromURL extracts the stored file name (last path segment) from an
// object URL.
func fileNameFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse file url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("file url %q has no object name", fileURL)
	}
	return name, nil
}

// FileName reports the stored file name for a previously minted URL. Used by
// workflows that compare an uploaded file against the currently stored one.
func FileName(fileURL string) string {
	name, err := fileNameFromURL(fileURL)
	if err != nil {
		return ""
	}
	return name
}
