package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	putInputs    []*s3.PutObjectInput
	deleteInputs []*s3.DeleteObjectInput
	putErr       error
	deleteErr    error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInputs = append(f.putInputs, params)
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleteInputs = append(f.deleteInputs, params)
	return &s3.DeleteObjectOutput{}, f.deleteErr
}

func newTestStore(fake *fakeS3) *Store {
	return &Store{client: fake, bucket: "rasaku-media", baseURL: "https://cdn.rasaku.id"}
}

func TestUpload(t *testing.T) {
	fake := &fakeS3{}
	store := newTestStore(fake)

	res, err := store.Upload(context.Background(), "thumbnails", "rendang.jpg",
		strings.NewReader("img"), "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "thumbnails/"))
	assert.True(t, strings.HasSuffix(res.Key, "-rendang.jpg"))
	assert.Equal(t, "https://cdn.rasaku.id/"+res.Key, res.URL)

	require.Len(t, fake.putInputs, 1)
	put := fake.putInputs[0]
	assert.Equal(t, "rasaku-media", aws.ToString(put.Bucket))
	assert.Equal(t, res.Key, aws.ToString(put.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(put.ContentType))
}

func TestUploadRandomizesKeys(t *testing.T) {
	store := newTestStore(&fakeS3{})

	first, err := store.Upload(context.Background(), "images", "promo.png",
		strings.NewReader("a"), "image/png")
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), "images", "promo.png",
		strings.NewReader("b"), "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestUploadStripsPathFromFilename(t *testing.T) {
	store := newTestStore(&fakeS3{})

	res, err := store.Upload(context.Background(), "videos", "../../etc/passwd",
		strings.NewReader("x"), "video/mp4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Key, "videos/"))
	assert.True(t, strings.HasSuffix(res.Key, "-passwd"))
	assert.NotContains(t, res.Key, "..")
}

func TestUploadError(t *testing.T) {
	store := newTestStore(&fakeS3{putErr: errors.New("denied")})

	_, err := store.Upload(context.Background(), "images", "promo.png",
		strings.NewReader("a"), "image/png")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	fake := &fakeS3{}
	store := newTestStore(fake)

	require.NoError(t, store.Delete(context.Background(), "images/abc-promo.png"))

	require.Len(t, fake.deleteInputs, 1)
	assert.Equal(t, "images/abc-promo.png", aws.ToString(fake.deleteInputs[0].Key))
	assert.Equal(t, "rasaku-media", aws.ToString(fake.deleteInputs[0].Bucket))
}
