package uploads

import (
	"net/http"

	"livelens/internal/identity"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/middleware"
	"livelens/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// PresignUpload godoc
// @Summary Get a presigned URL for a review image
// @Description The client PUTs the image to upload_url and then lists public_url in the review's images.
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PresignRequest true "Image metadata"
// @Success 201 {object} response.StandardApiResponse{data=UploadTicket}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 503 {object} response.StandardApiResponse
// @Router /uploads/presign [post]
func (c *Controller) PresignUpload(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		response.RespondError(ctx, apperrors.Unauthenticated(identity.ErrMissingToken))
		return
	}

	var req PresignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(ctx, err)
		return
	}

	ticket, err := c.service.Presign(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Upload URL created", ticket, nil)
}
