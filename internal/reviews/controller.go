package reviews

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

// SubmitReview godoc
// @Summary Submit a seat review
// @Description Resolves (or creates) the seat and stores the review. Seat aggregates are refreshed in the same transaction unless aggregation is deferred.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitReviewRequest true "Review"
// @Success 201 {object} response.StandardApiResponse{data=SubmitReviewResponse}
// @Failure 400 {object} response.StandardApiResponse
// @Failure 401 {object} response.StandardApiResponse
// @Failure 422 {object} response.StandardApiResponse
// @Router /reviews [post]
func (c *Controller) SubmitReview(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		response.RespondError(ctx, apperrors.Unauthenticated(identity.ErrMissingToken))
		return
	}

	var req SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(ctx, err)
		return
	}

	result, err := c.service.Submit(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Review submitted successfully", result, nil)
}

// Search godoc
// @Summary Search reviews
// @Tags search
// @Produce json
// @Param q query string false "Free text over review text"
// @Param seat_id query string false "Seat id"
// @Param event_id query string false "Event id"
// @Param venue_id query string false "Venue id"
// @Param user_id query string false "Author id"
// @Param min_rating query int false "Minimum overall rating"
// @Param sort_by query string false "overall_rating|created_at|price_paid"
// @Param order query string false "asc|desc"
// @Param limit query int false "1-100" default(20)
// @Param offset query int false ">= 0" default(0)
// @Success 200 {object} search.Page[SearchResult]
// @Router /search/reviews [get]
func (c *Controller) Search(ctx *gin.Context) {
	page, err := c.service.Search(ctx.Request.Context(), ctx.Request.URL.Query())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}
