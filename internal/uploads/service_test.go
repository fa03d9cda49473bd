package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	keys []string
	err  error
}

func (f *fakeStore) Presign(_ context.Context, key, contentType string, size int64) (*UploadTicket, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, key)
	return &UploadTicket{
		Key:       key,
		Method:    http.MethodPut,
		URL:       "https://bucket.example/" + key + "?sig=1",
		Headers:   map[string]string{"Content-Type": contentType},
		PublicURL: "https://cdn.example/" + key,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func TestPresignBuildsUserScopedKey(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, 1024)
	userID := uuid.New()

	ticket, err := svc.Presign(context.Background(), userID, PresignRequest{ContentType: "IMAGE/PNG", Size: 512})
	require.NoError(t, err)

	prefix := "reviews/" + userID.String() + "/"
	assert.True(t, strings.HasPrefix(ticket.Key, prefix), ticket.Key)
	assert.True(t, strings.HasSuffix(ticket.Key, ".png"), ticket.Key)
	_, err = uuid.Parse(strings.TrimSuffix(strings.TrimPrefix(ticket.Key, prefix), ".png"))
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example/"+ticket.Key, ticket.PublicURL)
}

func TestPresignRejects(t *testing.T) {
	svc := NewService(&fakeStore{}, 1024)

	cases := []struct {
		name  string
		req   PresignRequest
		field string
	}{
		{"unsupported type", PresignRequest{ContentType: "application/pdf", Size: 10}, "content_type"},
		{"zero size", PresignRequest{ContentType: "image/jpeg", Size: 0}, "size"},
		{"too large", PresignRequest{ContentType: "image/jpeg", Size: 2048}, "size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Presign(context.Background(), uuid.New(), tc.req)
			require.ErrorIs(t, err, apperrors.ErrInvalidInput)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, appErr.Field)
		})
	}
}

func TestPresignWithoutStore(t *testing.T) {
	_, err := NewService(nil, 0).Presign(context.Background(), uuid.New(), PresignRequest{ContentType: "image/png", Size: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}

func TestPresignPropagatesStoreError(t *testing.T) {
	boom := errors.New("s3 down")
	_, err := NewService(&fakeStore{err: boom}, 0).Presign(context.Background(), uuid.New(), PresignRequest{ContentType: "image/png", Size: 1})
	assert.ErrorIs(t, err, boom)
}

func TestPresignUploadHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	engine := gin.New()
	authed := engine.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	SetupUploadRoutes(authed, NewController(NewService(&fakeStore{}, 1024)))

	body, _ := json.Marshal(PresignRequest{ContentType: "image/webp", Size: 100})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/presign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		response.StandardApiResponse
		Data UploadTicket `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasSuffix(resp.Data.Key, ".webp"))
	assert.Equal(t, http.MethodPut, resp.Data.Method)
}
