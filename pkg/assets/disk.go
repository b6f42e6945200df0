package assets

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/mayorista/pkg/storage"
)

// DiskUploader writes images to a storage disk under prefix.
type DiskUploader struct {
	disk   storage.Disk
	prefix string
}

func NewDiskUploader(d storage.Disk, prefix string) *DiskUploader {
	return &DiskUploader{disk: d, prefix: prefix}
}

func (u *DiskUploader) Upload(ctx context.Context, f File) (string, error) {
	key := path.Join(u.prefix, uuid.NewString()+extension(f))
	if err := u.disk.Put(ctx, key, f.Body, f.ContentType); err != nil {
		return "", fmt.Errorf("assets: store %s: %w", key, err)
	}
	return u.disk.URL(key), nil
}
