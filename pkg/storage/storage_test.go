package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/mayorista/pkg/storage"
)

func TestLocalPutExistsDelete(t *testing.T) {
	ctx := context.Background()
	disk := storage.NewLocal(t.TempDir(), "http://cdn.test/storage/")

	require.NoError(t, disk.Put(ctx, "products/a.jpg", strings.NewReader("img"), "image/jpeg"))

	ok, err := disk.Exists(ctx, "products/a.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://cdn.test/storage/products/a.jpg", disk.URL("/products/a.jpg"))

	require.NoError(t, disk.Delete(ctx, "products/a.jpg"))
	require.NoError(t, disk.Delete(ctx, "products/a.jpg"), "deleting twice is fine")

	ok, err = disk.Exists(ctx, "products/a.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalRejectsEscapingPaths(t *testing.T) {
	disk := storage.NewLocal(t.TempDir(), "")
	err := disk.Put(context.Background(), "../outside.jpg", strings.NewReader("x"), "")
	assert.Error(t, err)
}

type fakeS3 struct {
	objects map[string]string
	types   map[string]string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, _ := io.ReadAll(in.Body)
	f.objects[*in.Key] = string(b)
	if in.ContentType != nil {
		f.types[*in.Key] = *in.ContentType
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Driver(t *testing.T) {
	ctx := context.Background()
	fake := &fakeS3{objects: map[string]string{}, types: map[string]string{}}
	disk := storage.NewS3(fake, "bucket", "https://bucket.example.com/")

	require.NoError(t, disk.Put(ctx, "products/b.png", strings.NewReader("png"), "image/png"))
	assert.Equal(t, "png", fake.objects["products/b.png"])
	assert.Equal(t, "image/png", fake.types["products/b.png"])
	assert.Equal(t, "https://bucket.example.com/products/b.png", disk.URL("products/b.png"))

	ok, err := disk.Exists(ctx, "products/b.png")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, disk.Delete(ctx, "products/b.png"))
	ok, err = disk.Exists(ctx, "products/b.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenUnknownDisk(t *testing.T) {
	_, err := storage.Open(context.Background(), "ftp")
	assert.ErrorIs(t, err, storage.ErrUnknownDisk)
}

func TestRegisterOverridesDisk(t *testing.T) {
	local := storage.NewLocal(t.TempDir(), "http://x")
	storage.Register("local", local)

	got, err := storage.Open(context.Background(), "local")
	require.NoError(t, err)
	assert.Same(t, local, got)
}
