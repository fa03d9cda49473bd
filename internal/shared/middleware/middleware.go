package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"livelens/internal/identity"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/utils/response"
	"livelens/pkg/logger"
	"livelens/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// RequireIdentity authenticates the bearer token with id and stores the
// resolved user id in the gin context.
func RequireIdentity(id identity.Identity, log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetDefault()
	}
	return func(c *gin.Context) {
		if id == nil {
			response.RespondError(c, apperrors.NotConfigured("identity"))
			c.Abort()
			return
		}

		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			reject(c, log, "missing_token", err)
			return
		}

		userID, err := id.Authenticate(c.Request.Context(), token)
		if err != nil {
			reject(c, log, "invalid_token", err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext returns the user id set by RequireIdentity
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}

// RequireAdmin allows only the listed user ids. It must run after RequireIdentity.
func RequireAdmin(adminUserIDs []string) gin.HandlerFunc {
	allowed := make(map[uuid.UUID]struct{}, len(adminUserIDs))
	for _, raw := range adminUserIDs {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			allowed[id] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			response.RespondError(c, apperrors.Unauthenticated(identity.ErrMissingToken))
			c.Abort()
			return
		}
		if _, ok := allowed[userID]; !ok {
			metrics.AuthRejections.WithLabelValues("forbidden").Inc()
			response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger logs every request once it has been handled, tagged with the
// authenticated user when there is one
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		reqLog := l
		if userID, ok := UserIDFromContext(c); ok {
			reqLog = l.WithUserID(userID.String())
		}
		reqLog.LogHTTPRequest(c, time.Since(start))
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", identity.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("authorization header format must be Bearer {token}")
	}
	return strings.TrimSpace(parts[1]), nil
}

func reject(c *gin.Context, log *logger.Logger, reason string, err error) {
	metrics.AuthRejections.WithLabelValues(reason).Inc()
	log.LogAuthFailure(c.Request.Context(), reason, c.ClientIP())
	response.RespondJSON(c, "error", http.StatusUnauthorized, err.Error(), nil, nil)
	c.Abort()
}
