package assets_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mayorista/pkg/assets"
	"github.com/shashiranjanraj/mayorista/pkg/storage"
)

func image(body string, contentType string) assets.File {
	return assets.File{
		Name:        "foto.JPG",
		ContentType: contentType,
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, assets.Validate(image("jpeg", "image/jpeg")))
	assert.NoError(t, assets.Validate(image("png", "image/png; charset=binary")))

	assert.ErrorIs(t, assets.Validate(image("pdf", "application/pdf")), assets.ErrNotImage)
	assert.ErrorIs(t, assets.Validate(image("x", "")), assets.ErrNotImage)
	assert.ErrorIs(t, assets.Validate(image("", "image/png")), assets.ErrEmptyFile)

	big := image("x", "image/png")
	big.Size = assets.MaxImageSize + 1
	assert.ErrorIs(t, assets.Validate(big), assets.ErrTooLarge)

	edge := image("x", "image/png")
	edge.Size = assets.MaxImageSize
	assert.NoError(t, assets.Validate(edge))
}

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1712345/mayorista/products/abc.jpg": "mayorista/products/abc",
		"https://res.cloudinary.com/demo/image/upload/products/abc.png":                    "products/abc",
		"https://res.cloudinary.com/demo/image/upload/v99/abc.webp?x=1":                    "abc",
		"https://res.cloudinary.com/demo/image/upload/version/abc.jpg":                     "version/abc",
		"https://example.com/images/abc.jpg":                                               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, assets.PublicIDFromURL(in), in)
	}
}

type fakeCloudinary struct {
	params uploader.UploadParams
	body   string
	err    error
}

func (f *fakeCloudinary) Upload(_ context.Context, file interface{}, p uploader.UploadParams) (*uploader.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(file.(io.Reader))
	f.body, f.params = string(b), p
	return &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/" + p.Folder + "/" + p.PublicID + ".jpg"}, nil
}

func TestCloudinaryUploader(t *testing.T) {
	api := &fakeCloudinary{}
	u := assets.Instrument("cloudinary", assets.NewCloudinaryWithAPI(api, "mayorista/products"))

	url, err := u.Upload(context.Background(), image("jpeg-bytes", "image/jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "jpeg-bytes", api.body)
	assert.Equal(t, "mayorista/products", api.params.Folder)
	assert.NotEmpty(t, api.params.PublicID)
	assert.True(t, strings.HasPrefix(url, "https://"))
	assert.Equal(t, "mayorista/products/"+api.params.PublicID, assets.PublicIDFromURL(url))
}

func TestCloudinaryFailure(t *testing.T) {
	api := &fakeCloudinary{err: errors.New("401 invalid signature")}
	u := assets.Instrument("cloudinary", assets.NewCloudinaryWithAPI(api, "f"))

	_, err := u.Upload(context.Background(), image("x", "image/jpeg"))
	assert.ErrorContains(t, err, "invalid signature")
}

func TestInstrumentRejectsBeforeUpload(t *testing.T) {
	api := &fakeCloudinary{}
	u := assets.Instrument("cloudinary", assets.NewCloudinaryWithAPI(api, "f"))

	_, err := u.Upload(context.Background(), image("%PDF", "application/pdf"))
	assert.ErrorIs(t, err, assets.ErrNotImage)
	assert.Empty(t, api.body)
}

func TestDiskUploader(t *testing.T) {
	root := t.TempDir()
	disk := storage.NewLocal(root, "http://localhost:8080/storage")
	u := assets.NewDiskUploader(disk, "products")

	url, err := u.Upload(context.Background(), image("bytes", "image/jpeg"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/storage/products/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	rel := strings.TrimPrefix(url, "http://localhost:8080/storage/")
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))
}

func TestNewCloudinaryRequiresURL(t *testing.T) {
	_, err := assets.NewCloudinary("", "f")
	assert.ErrorIs(t, err, assets.ErrNotConfigured)
}

func TestUnconfiguredAlwaysFails(t *testing.T) {
	u := assets.Unconfigured(errors.New("dial s3: no route"))
	_, err := u.Upload(context.Background(), assets.File{Name: "a.png", ContentType: "image/png", Size: 1})
	assert.ErrorIs(t, err, assets.ErrNotConfigured)
	assert.ErrorContains(t, err, "no route")
}
