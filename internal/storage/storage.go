package storage

import (
	"context"
	"io"
)

// Package storage contains the blob storage abstraction for externally stored
// files (product images, profile pictures). Implementations must rely on
// streaming I/O only; no local disk.

// Storage uploads named files and returns publicly addressable URLs.
// Delete takes the URL previously returned by Upload.
type Storage interface {
	// Upload stores the content under the given file name and returns the
	// public URL of the stored object. Uploading the same name overwrites
	// the previous object.
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes the object addressed by a URL previously returned by Upload.
	Delete(ctx context.Context, fileURL string) error
}
