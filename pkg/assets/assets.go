// Package assets uploads product images and returns their public URL.
//
// The default disk is Cloudinary (CLOUDINARY_URL). ASSET_DISK=local or s3
// routes uploads through pkg/storage instead.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/shashiranjanraj/mayorista/config"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
	"github.com/shashiranjanraj/mayorista/pkg/storage"
)

// MaxImageSize is the upload limit for product images.
const MaxImageSize = 2 << 20

var (
	ErrNotImage      = errors.New("assets: file is not an image")
	ErrTooLarge      = errors.New("assets: image exceeds 2 MB")
	ErrEmptyFile     = errors.New("assets: file is empty")
	ErrNotConfigured = errors.New("assets: uploader is not configured")
)

// File is one uploaded image.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// Validate enforces the image constraints before anything is sent upstream.
func Validate(f File) error {
	if f.Size <= 0 {
		return ErrEmptyFile
	}
	if f.Size > MaxImageSize {
		return ErrTooLarge
	}
	mediaType, _, err := mime.ParseMediaType(f.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return ErrNotImage
	}
	return nil
}

// extension picks a file extension from the name, then the content type.
func extension(f File) string {
	if ext := strings.ToLower(path.Ext(f.Name)); ext != "" {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(f.ContentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// PublicIDFromURL derives the Cloudinary public id from a delivery URL:
// the path after "upload/", without a leading version segment and without
// the extension. It returns "" for URLs that are not delivery URLs.
func PublicIDFromURL(raw string) string {
	_, rest, ok := strings.Cut(raw, "/upload/")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) > 1 && isVersion(parts[0]) {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// instrumented counts uploads by disk and result.
type instrumented struct {
	disk string
	next Uploader
}

// Instrument wraps u so every call is validated and counted under disk.
func Instrument(disk string, u Uploader) Uploader {
	return &instrumented{disk: disk, next: u}
}

func (i *instrumented) Upload(ctx context.Context, f File) (string, error) {
	if err := Validate(f); err != nil {
		metrics.ImageUploads.WithLabelValues(i.disk, "rejected").Inc()
		return "", err
	}
	url, err := i.next.Upload(ctx, f)
	if err != nil {
		metrics.ImageUploads.WithLabelValues(i.disk, "failed").Inc()
		return "", err
	}
	metrics.ImageUploads.WithLabelValues(i.disk, "ok").Inc()
	return url, nil
}

// FromConfig builds the uploader selected by ASSET_DISK.
func FromConfig(ctx context.Context) (Uploader, error) {
	disk := config.AssetDisk()
	switch disk {
	case "cloudinary":
		u, err := NewCloudinary(config.CloudinaryURL(), config.CloudinaryFolder())
		if err != nil {
			return nil, err
		}
		return Instrument(disk, u), nil
	case "local", "s3":
		d, err := storage.Open(ctx, disk)
		if err != nil {
			return nil, err
		}
		return Instrument(disk, NewDiskUploader(d, "products")), nil
	default:
		return nil, fmt.Errorf("%w: unknown ASSET_DISK %q", ErrNotConfigured, disk)
	}
}

// unconfigured rejects every upload with the boot-time configuration error.
type unconfigured struct{ cause error }

// Unconfigured returns an Uploader that fails every call with cause, which
// should wrap ErrNotConfigured. The server keeps running without uploads.
func Unconfigured(cause error) Uploader {
	if !errors.Is(cause, ErrNotConfigured) {
		cause = fmt.Errorf("%w: %w", ErrNotConfigured, cause)
	}
	return unconfigured{cause: cause}
}

func (u unconfigured) Upload(context.Context, File) (string, error) { return "", u.cause }
