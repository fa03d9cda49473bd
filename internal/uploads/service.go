package uploads

import (
	"context"
	"fmt"
	"strings"

	"livelens/internal/shared/apperrors"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type Service interface {
	Presign(ctx context.Context, userID uuid.UUID, req PresignRequest) (*UploadTicket, error)
}

type service struct {
	store   BlobStore
	maxSize int64
}

// NewService returns an upload service. A nil store reports NotConfigured on
// every call.
func NewService(store BlobStore, maxSize int64) Service {
	return &service{store: store, maxSize: maxSize}
}

func (s *service) Presign(ctx context.Context, userID uuid.UUID, req PresignRequest) (*UploadTicket, error) {
	if s.store == nil {
		return nil, apperrors.NotConfigured("image storage")
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, apperrors.InvalidInput("content_type", "unsupported image type")
	}
	if req.Size <= 0 {
		return nil, apperrors.InvalidInput("size", "must be positive")
	}
	if s.maxSize > 0 && req.Size > s.maxSize {
		return nil, apperrors.InvalidInput("size", fmt.Sprintf("must be at most %d bytes", s.maxSize))
	}

	key := fmt.Sprintf("reviews/%s/%s.%s", userID, uuid.New(), ext)
	ticket, err := s.store.Presign(ctx, key, contentType, req.Size)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
