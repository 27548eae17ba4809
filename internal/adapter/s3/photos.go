// Package s3 stores resized catch photos in an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

const jpegQuality = 85

// PhotoStore resizes uploaded photos and puts them in a public-read bucket.
type PhotoStore struct {
	client    s3iface.S3API
	bucket    string
	region    string
	publicURL string
	maxEdge   int
	maxPixels int
	logger    *slog.Logger
}

// NewPhotoStore creates an S3 session for region. Credentials come from the
// standard AWS environment and shared config chain. publicURL, when set,
// replaces the bucket's virtual-hosted URL in returned links. Photos whose
// width times height exceeds maxPixels are rejected before decoding.
func NewPhotoStore(region, bucket, publicURL string, maxEdge, maxPixels int, logger *slog.Logger) (*PhotoStore, error) {
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(region)},
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &PhotoStore{
		client:    awss3.New(sess),
		bucket:    bucket,
		region:    region,
		publicURL: publicURL,
		maxEdge:   maxEdge,
		maxPixels: maxPixels,
		logger:    logger,
	}, nil
}

// Upload decodes r, shrinks it so neither edge exceeds the configured
// maximum, stores it as JPEG and returns the public URL.
func (p *PhotoStore) Upload(ctx context.Context, anglerID, catchID int64, r io.Reader) (string, error) {
	// Read the header first; the decoder allocates width*height up front.
	var header bytes.Buffer
	cfg, format, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return "", fmt.Errorf("%w: decode photo: %w", domain.ErrInvalidInput, err)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > int64(p.maxPixels) {
		p.logger.Warn("photo rejected", "format", format, "width", cfg.Width, "height", cfg.Height)
		return "", fmt.Errorf("%w: photo is %dx%d, limit is %d pixels", domain.ErrInvalidInput, cfg.Width, cfg.Height, p.maxPixels)
	}

	img, err := imaging.Decode(io.MultiReader(&header, r), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: decode photo: %w", domain.ErrInvalidInput, err)
	}

	b := img.Bounds()
	if b.Dx() > p.maxEdge || b.Dy() > p.maxEdge {
		img = imaging.Fit(img, p.maxEdge, p.maxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode photo: %w", err)
	}

	key := fmt.Sprintf("catches/%d/%d-%s.jpg", anglerID, catchID, uuid.NewString())
	_, err = p.client.PutObjectWithContext(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/jpeg"),
		ACL:         aws.String(awss3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put s3://%s/%s: %w", domain.ErrExternalService, p.bucket, key, err)
	}

	p.logger.Info("catch photo stored", "bucket", p.bucket, "key", key, "bytes", buf.Len())
	return p.objectURL(key), nil
}

func (p *PhotoStore) objectURL(key string) string {
	if p.publicURL != "" {
		return p.publicURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key)
}
