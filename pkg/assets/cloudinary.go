package assets

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryAPI is the part of the Cloudinary upload API used here.
type CloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader sends images to Cloudinary and returns the secure URL.
type CloudinaryUploader struct {
	api    CloudinaryAPI
	folder string
}

// NewCloudinary builds an uploader from a cloudinary:// URL.
func NewCloudinary(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("%w: CLOUDINARY_URL is empty", ErrNotConfigured)
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("assets: cloudinary: %w", err)
	}
	return NewCloudinaryWithAPI(&cld.Upload, folder), nil
}

func NewCloudinaryWithAPI(api CloudinaryAPI, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{api: api, folder: folder}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, f File) (string, error) {
	res, err := u.api.Upload(ctx, f.Body, uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("assets: cloudinary upload: %w", err)
	}
	if res == nil || res.SecureURL == "" {
		return "", errors.New("assets: cloudinary upload returned no url")
	}
	return res.SecureURL, nil
}
