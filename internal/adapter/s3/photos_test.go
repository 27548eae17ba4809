package s3

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

type fakeS3 struct {
	s3iface.S3API
	input *awss3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *awss3.PutObjectInput, _ ...request.Option) (*awss3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &awss3.PutObjectOutput{}, nil
}

func testStore(client s3iface.S3API, publicURL string) *PhotoStore {
	return &PhotoStore{
		client:    client,
		bucket:    "reel-photos",
		region:    "us-east-2",
		publicURL: publicURL,
		maxEdge:   1024,
		maxPixels: 40_000_000,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, h/2, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestUpload_ResizesLargePhoto(t *testing.T) {
	fake := &fakeS3{}
	ps := testStore(fake, "")

	url, err := ps.Upload(context.Background(), 4, 17, pngOf(t, 2048, 1024))
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "reel-photos", aws.StringValue(fake.input.Bucket))
	assert.Equal(t, "image/jpeg", aws.StringValue(fake.input.ContentType))
	assert.Equal(t, awss3.ObjectCannedACLPublicRead, aws.StringValue(fake.input.ACL))

	key := aws.StringValue(fake.input.Key)
	assert.True(t, strings.HasPrefix(key, "catches/4/17-"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.Equal(t, "https://reel-photos.s3.us-east-2.amazonaws.com/"+key, url)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(fake.body))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestUpload_SmallPhotoKeepsSize(t *testing.T) {
	fake := &fakeS3{}
	ps := testStore(fake, "https://cdn.example.com")

	url, err := ps.Upload(context.Background(), 1, 2, pngOf(t, 300, 200))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/catches/1/2-"), url)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(fake.body))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	fake := &fakeS3{}
	ps := testStore(fake, "")

	_, err := ps.Upload(context.Background(), 1, 2, strings.NewReader("definitely not a picture"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, fake.input, "nothing should be uploaded")
}

func TestUpload_RejectsOversizedDimensions(t *testing.T) {
	fake := &fakeS3{}
	ps := testStore(fake, "")
	ps.maxPixels = 1_000_000

	// A blank grayscale PNG compresses to a few KiB whatever its size.
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1500, 1000))))

	_, err := ps.Upload(context.Background(), 1, 2, &buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "1500x1000")
	assert.Nil(t, fake.input, "nothing should be uploaded")
}

func TestUpload_AtPixelLimitAccepted(t *testing.T) {
	fake := &fakeS3{}
	ps := testStore(fake, "")
	ps.maxPixels = 1000 * 1000

	_, err := ps.Upload(context.Background(), 1, 2, pngOf(t, 1000, 1000))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(fake.body))
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Width)
	assert.Equal(t, 1000, cfg.Height)
}

func TestUpload_PutFailure(t *testing.T) {
	fake := &fakeS3{err: errors.New("AccessDenied")}
	ps := testStore(fake, "")

	_, err := ps.Upload(context.Background(), 1, 2, pngOf(t, 10, 10))
	assert.ErrorIs(t, err, domain.ErrExternalService)
	assert.Contains(t, err.Error(), "AccessDenied")
}
