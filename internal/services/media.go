package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"firstseries/internal/domain"
)

// MaxMediaSize is the largest accepted upload in bytes.
const MaxMediaSize = 5 << 20

// allowed image extensions and the content type stored for each. SVG is left
// out because the bucket serves objects inline from a public origin.
var mediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type mediaService struct {
	store          domain.MediaStore
	contextTimeout time.Duration
}

// NewMediaService returns a MediaService that writes to the given store.
func NewMediaService(store domain.MediaStore, timeout time.Duration) domain.MediaService {
	return &mediaService{store: store, contextTimeout: timeout}
}

func (s *mediaService) Upload(ctx context.Context, kind domain.MediaKind, filename string, body io.Reader, size int64) (*domain.UploadedMedia, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown media kind %q", domain.ErrInvalidInput, kind)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if size > MaxMediaSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxMediaSize)
	}
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := mediaTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrInvalidInput, ext)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if http.DetectContentType(head) != contentType {
		return nil, fmt.Errorf("%w: file content is not a %s image", domain.ErrInvalidInput, strings.TrimPrefix(ext, "."))
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key := fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), ext)
	url, err := s.store.Put(ctx, key, contentType, io.MultiReader(bytes.NewReader(head), body), size)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}
	return &domain.UploadedMedia{
		Kind:        kind,
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        size,
	}, nil
}
