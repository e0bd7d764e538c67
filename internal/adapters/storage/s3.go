package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"firstseries/internal/domain"
)

// S3Config configures the media bucket. Endpoint is set for S3-compatible stores.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL prefixes object keys to build public URLs, e.g. a CDN origin.
	PublicBaseURL string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Store struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewS3Store builds a MediaStore on an S3 bucket.
func NewS3Store(ctx context.Context, c S3Config) (domain.MediaStore, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("media bucket is not configured")
	}
	region := c.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if c.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, c), nil
}

func newS3Store(client putObjectAPI, c S3Config) *s3Store {
	base := strings.TrimRight(c.PublicBaseURL, "/")
	if base == "" {
		switch {
		case c.Endpoint != "":
			base = strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
		default:
			base = fmt.Sprintf("https://%s.s3.amazonaws.com", c.Bucket)
		}
	}
	return &s3Store{client: client, bucket: c.Bucket, baseURL: base}
}

// Put uploads body and returns its public URL. Uploads are small images, so the
// body is buffered to give the SDK a seekable payload.
func (s *s3Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, size+1))
	if err != nil {
		return "", fmt.Errorf("read media body: %w", err)
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("%w: media body is %d bytes, expected %d", domain.ErrInvalidInput, len(data), size)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// ErrNotConfigured is returned by the disabled store.
var ErrNotConfigured = errors.New("media storage is not configured")

type disabledStore struct{}

// Disabled returns a MediaStore that rejects every upload. It stands in when
// no bucket is configured so that the rest of the admin keeps working.
func Disabled() domain.MediaStore {
	return disabledStore{}
}

func (disabledStore) Put(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", ErrNotConfigured
}
