package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"heritage/config"
	"heritage/infras/otel"
	"heritage/shared/constant"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

var ErrNotConfigured = errors.New("object storage is not configured")

// S3 stores place images in an S3 compatible bucket and serves them from a public domain.
type S3 interface {
	Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (url string, err error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL returns the object key of a URL produced by Upload, or an empty string.
	KeyFromURL(url string) string
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

func New(config *config.Config, otel otel.Otel) S3 {
	storage := config.External.S3

	impl := &s3Impl{
		bucket:       storage.BucketName,
		publicDomain: strings.TrimRight(storage.PublicDomain, "/"),
		otel:         otel,
	}

	if storage.BucketName == "" {
		log.Warn().Msg("No S3 bucket configured, image uploads are disabled")

		return impl
	}

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(storage.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(storage.AccessKeyID, storage.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration, image uploads are disabled")

		return impl
	}

	impl.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if storage.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(storage.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	log.Info().Str("bucket", storage.BucketName).Msg("S3 client initialized")

	return impl
}

func (svc *s3Impl) Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if svc.client == nil {
		return constant.Empty, ErrNotConfigured
	}

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	size, err := body.Seek(0, io.SeekEnd)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to measure upload: %w", err)
	}

	if _, err = body.Seek(0, io.SeekStart); err != nil {
		return constant.Empty, fmt.Errorf("failed to rewind upload: %w", err)
	}

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicDomain + "/" + key, nil
}

func (svc *s3Impl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if svc.client == nil {
		return ErrNotConfigured
	}

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) KeyFromURL(url string) string {
	prefix := svc.publicDomain + "/"

	if svc.publicDomain == "" || !strings.HasPrefix(url, prefix) {
		return constant.Empty
	}

	return strings.TrimPrefix(url, prefix)
}
