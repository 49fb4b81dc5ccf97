package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const s3BackendName = "s3"

// S3Config holds connection settings for the S3 store. Endpoint is optional
// and overrides the AWS endpoint for MinIO or other S3-compatible servers.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKey       string
	SecretKey       string
	BaseURL         string
	MaxUploadSizeMB int
}

// S3Store persists uploads in an S3-compatible bucket.
type S3Store struct {
	client             *s3.Client
	bucket             string
	baseURL            string
	maxUploadSizeBytes int64
}

// NewS3Store builds an S3 store from the given settings. Static credentials
// are used when provided; otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("media: s3 bucket is required")
	}
	if cfg.MaxUploadSizeMB <= 0 {
		cfg.MaxUploadSizeMB = 10
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Store{
		client:             client,
		bucket:             cfg.Bucket,
		baseURL:            baseURL,
		maxUploadSizeBytes: int64(cfg.MaxUploadSizeMB) * 1024 * 1024,
	}, nil
}

// storageKey partitions objects by date so bucket listings stay navigable.
func storageKey(ext string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("posts/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *S3Store) Upload(ctx context.Context, filename string, content []byte) (obj *Object, err error) {
	start := time.Now()
	ctx, span := observability.StartMediaSpan(ctx, s3BackendName, "upload")
	defer func() {
		observability.ObserveMediaCall(s3BackendName, "upload", start, err)
		observability.EndSpan(span, err)
	}()

	if int64(len(content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}
	ext, err := validateImage(content)
	if err != nil {
		return nil, err
	}

	key := storageKey(ext)
	contentType := strings.TrimPrefix(ext, ".")
	if contentType == "jpg" {
		contentType = "jpeg"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("image/" + contentType),
	})
	if err != nil {
		return nil, models.NewStoreUnavailableError("media", err)
	}

	return &Object{
		URL: s.baseURL + "/" + key,
		ID:  key,
	}, nil
}

// Delete removes the object. S3 DeleteObject succeeds for missing keys, so
// idempotency comes for free.
func (s *S3Store) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	ctx, span := observability.StartMediaSpan(ctx, s3BackendName, "delete")
	defer func() {
		observability.ObserveMediaCall(s3BackendName, "delete", start, err)
		observability.EndSpan(span, err)
	}()

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return models.NewStoreUnavailableError("media", err)
	}
	return nil
}
