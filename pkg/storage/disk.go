// Package storage is a small filesystem abstraction for product images that
// are not hosted on Cloudinary.
//
// Two drivers are available:
//   - "local" writes under STORAGE_LOCAL_ROOT and serves from STORAGE_URL
//   - "s3" targets any S3-compatible bucket (AWS, MinIO, R2, Spaces)
//
//	disk, err := storage.Open("s3")
//	err = disk.Put(ctx, "products/abc.jpg", file, "image/jpeg")
//	url := disk.URL("products/abc.jpg")
package storage

import (
	"context"
	"errors"
	"io"
)

var ErrUnknownDisk = errors.New("storage: unknown disk")

// Disk is the driver interface.
type Disk interface {
	// Put writes r to path. contentType may be empty.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}
