package response

import (
	"log/slog"
	"net/http"

	"livelens/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError writes err in the standard envelope with the status code of its
// kind. Lost store connections are reported as an unavailable database and
// other unclassified errors as a generic failure.
func RespondError(c *gin.Context, err error) {
	code := apperrors.HTTPStatus(err)
	if appErr, ok := apperrors.As(err); ok {
		RespondJSON(c, "error", code, appErr.Error(), nil, appErr.Detail())
		return
	}

	if apperrors.IsStoreUnavailable(err) {
		slog.Error("store unavailable", "path", c.FullPath(), "error", err)
		appErr := apperrors.Unavailable("database")
		RespondJSON(c, "error", code, appErr.Error(), nil, appErr.Detail())
		return
	}

	slog.Error("request failed", "path", c.FullPath(), "error", err)
	RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
}
