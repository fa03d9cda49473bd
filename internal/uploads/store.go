package uploads

import (
	"context"
	"time"
)

// UploadTicket is a short-lived grant to PUT one object directly to storage
type UploadTicket struct {
	Key       string            `json:"key"`
	Method    string            `json:"method"`
	URL       string            `json:"upload_url"`
	Headers   map[string]string `json:"headers,omitempty"`
	PublicURL string            `json:"public_url"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// BlobStore issues presigned uploads for review images
type BlobStore interface {
	Presign(ctx context.Context, key, contentType string, size int64) (*UploadTicket, error)
}
