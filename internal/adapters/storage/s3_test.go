package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstseries/internal/domain"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	b, _ := io.ReadAll(params.Body)
	f.body = string(b)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakeS3{}
	store := newS3Store(fake, S3Config{Bucket: "media", PublicBaseURL: "https://cdn.firstseries.example/"})

	url, err := store.Put(context.Background(), "sponsor-logo/abc.png", "image/png", strings.NewReader("pngdata"), 7)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.firstseries.example/sponsor-logo/abc.png", url)
	assert.Equal(t, "media", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "sponsor-logo/abc.png", aws.ToString(fake.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fake.input.ContentType))
	assert.Equal(t, int64(7), aws.ToInt64(fake.input.ContentLength))
	assert.Equal(t, "pngdata", fake.body)
}

func TestS3Store_PutSizeMismatch(t *testing.T) {
	fake := &fakeS3{}
	store := newS3Store(fake, S3Config{Bucket: "media"})

	_, err := store.Put(context.Background(), "k", "image/png", strings.NewReader("longer than declared"), 4)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, fake.input)
}

func TestS3Store_PutError(t *testing.T) {
	store := newS3Store(&fakeS3{err: errors.New("AccessDenied")}, S3Config{Bucket: "media"})
	_, err := store.Put(context.Background(), "k", "image/png", strings.NewReader("x"), 1)
	assert.ErrorContains(t, err, "AccessDenied")
}

func TestNewS3Store_PublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{name: "explicit", cfg: S3Config{Bucket: "media", PublicBaseURL: "https://cdn.example/"}, want: "https://cdn.example"},
		{name: "custom endpoint", cfg: S3Config{Bucket: "media", Endpoint: "https://fly.storage.tigris.dev"}, want: "https://fly.storage.tigris.dev/media"},
		{name: "aws", cfg: S3Config{Bucket: "media"}, want: "https://media.s3.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newS3Store(&fakeS3{}, tt.cfg).baseURL)
		})
	}
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled().Put(context.Background(), "speaker-photo/a.png", "image/png", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
