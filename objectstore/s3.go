package objectstore

import (
	"context"
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config configures an S3Uploader against any S3-compatible endpoint
// (AWS S3 itself, or a self-hosted MinIO deployment).
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyId     string
	SecretAccessKey string

	// PublicBaseURL is prefixed to an uploaded object's key to build the
	// URL returned to callers. If empty, Endpoint/Bucket is used.
	PublicBaseURL string
}

// S3Uploader implements Uploader against an S3-compatible bucket via
// aws-sdk-go-v2.
type S3Uploader struct {
	client *s3.Client
	bucket string
	base   string
}

// NewS3Uploader builds an S3Uploader from cfg.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyId, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("objectstore: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
		}
		o.UsePathStyle = true
	})

	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("%s/%s", cfg.Endpoint, cfg.Bucket)
	}

	return &S3Uploader{client: client, bucket: cfg.Bucket, base: base}, nil
}

// Upload reads localPath and puts it under key in the configured bucket,
// returning the public URL it can be fetched from.
func (u *S3Uploader) Upload(ctx context.Context, key, localPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("objectstore: opening %s: %w", localPath, err)
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.bucket,
		Key:         &key,
		Body:        f,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("objectstore: uploading %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s", u.base, key), nil
}
