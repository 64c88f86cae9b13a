package blob

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/oficinago/oficinago/internal/config"
	ierr "github.com/oficinago/oficinago/internal/errors"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
	// Key prefix kept from the original deployment's storage layout
	defaultKeyPrefix = "oficina"
)

// Store is the blob-store boundary for raw attachments. Upload failures are
// expected and tolerated by callers: a record persists without remote
// attachment URLs and the pipeline degrades to transient-only state.
type Store interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(ctx context.Context, key string) (string, error)
}

type s3Store struct {
	client *s3.Client
	config *config.S3Config
}

// NewStore returns nil when the blob store is disabled, which is a valid
// local-only configuration.
func NewStore(config *config.Configuration) (Store, error) {
	if !config.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(config.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrHTTPClient)
	}

	return &s3Store{
		config: &config.S3,
		client: s3.NewFromConfig(awsCfg),
	}, nil
}

// AttachmentKey builds the object key for an uploaded attachment, preserving
// the original `oficina/<unix-ms>_<name>` path shape.
func AttachmentKey(name string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", defaultKeyPrefix, now.UnixMilli(), name)
}

func (s *s3Store) bucket() string {
	return s.config.AttachmentBucketConfig.Bucket
}

func (s *s3Store) objectKey(key string) string {
	if prefix := s.config.AttachmentBucketConfig.KeyPrefix; prefix != "" {
		return fmt.Sprintf("%s/%s", prefix, key)
	}
	return key
}

func (s *s3Store) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket()),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return ierr.WithError(err).WithHint("failed to upload attachment").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrUpload)
	}

	return nil
}

func (s *s3Store) PublicURL(ctx context.Context, key string) (string, error) {
	duration, err := time.ParseDuration(s.config.AttachmentBucketConfig.PresignExpiryDuration)
	if err != nil {
		duration = defaultPresignExpiryDuration
	}

	presigner := s3.NewPresignClient(s.client)
	result, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket()),
		Key:    aws.String(s.objectKey(key)),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to presign attachment url").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrHTTPClient)
	}

	return result.URL, nil
}
