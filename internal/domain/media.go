package domain

import (
	"context"
	"io"
)

// MediaKind says what an uploaded image is for.
type MediaKind string

const (
	MediaSpeakerPhoto MediaKind = "speaker-photo"
	MediaSponsorLogo  MediaKind = "sponsor-logo"
)

// Valid reports whether k is a known media kind.
func (k MediaKind) Valid() bool {
	return k == MediaSpeakerPhoto || k == MediaSponsorLogo
}

// MediaStore stores public objects (infrastructure port).
type MediaStore interface {
	// Put stores body under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// UploadedMedia is the result of a media upload.
// swagger:model UploadedMedia
type UploadedMedia struct {
	Kind        MediaKind `json:"kind"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
}

// MediaService validates and stores speaker photos and sponsor logos.
type MediaService interface {
	Upload(ctx context.Context, kind MediaKind, filename string, body io.Reader, size int64) (*UploadedMedia, error)
}
