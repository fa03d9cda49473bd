package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livelens/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 5,
		SearchRequests:  3,
		ReviewRequests:  2,
		UploadRequests:  2,
		AdminRequests:   5,
		HealthRequests:  5,
	}
}

func newRedisLimiter(t *testing.T, cfg *Config) Limiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, cfg)
}

func TestLimitersRejectAfterLimit(t *testing.T) {
	limiters := map[string]func(t *testing.T) Limiter{
		"redis": func(t *testing.T) Limiter { return newRedisLimiter(t, testConfig()) },
		"local": func(t *testing.T) Limiter { return NewRateLimiter(nil, testConfig()) },
	}

	for name, build := range limiters {
		t.Run(name, func(t *testing.T) {
			limiter := build(t)
			ctx := context.Background()

			for i := 0; i < 2; i++ {
				res, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeReview)
				require.NoError(t, err)
				assert.True(t, res.Allowed, "request %d", i)
				assert.Equal(t, 2, res.Limit)
			}

			res, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeReview)
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, 0, res.Remaining)

			// other clients and route classes keep their own window
			res, err = limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeReview)
			require.NoError(t, err)
			assert.True(t, res.Allowed)

			res, err = limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeSearch)
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}

func TestWhitelistedAndDisabledAreUnlimited(t *testing.T) {
	cfg := testConfig()
	cfg.WhitelistedIPs = []string{"127.0.0.1"}
	limiter := newRedisLimiter(t, cfg)

	for i := 0; i < 10; i++ {
		res, err := limiter.IsAllowed(context.Background(), "127.0.0.1", RateLimitTypeReview)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	disabled := testConfig()
	disabled.Enabled = false
	local := NewLocalLimiter(disabled)
	for i := 0; i < 10; i++ {
		res, err := local.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeReview)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}

func TestGetRateLimitType(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodGet, "/metrics", RateLimitTypeHealth},
		{http.MethodGet, "/api/v1/search/venues", RateLimitTypeSearch},
		{http.MethodGet, "/api/v1/search/reviews", RateLimitTypeSearch},
		{http.MethodPost, "/api/v1/reviews", RateLimitTypeReview},
		{http.MethodPost, "/api/v1/uploads/presign", RateLimitTypeUpload},
		{http.MethodPost, "/api/v1/admin/venues", RateLimitTypeAdmin},
		{http.MethodGet, "/api/v1/venues/:id", RateLimitTypeDefault},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, getRateLimitType(tc.method, tc.path), tc.path)
	}
}

func TestMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware(NewLocalLimiter(testConfig()), logger.NewNop()))
	engine.GET("/api/v1/search/venues", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/search/venues", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{200, 200, 200, 429}, codes)
}
