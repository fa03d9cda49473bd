package seats

import (
	"net/http"

	"livelens/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Search godoc
// @Summary Search seats of a venue
// @Tags search
// @Produce json
// @Param venue_id query string true "Venue id"
// @Param q query string false "Free text over section and row"
// @Param section query string false "Section (case-insensitive)"
// @Param min_rating query number false "Minimum average overall rating, unreviewed seats count as 0"
// @Param max_distance query number false "Maximum distance to stage"
// @Param sort_by query string false "distance_to_stage|avg_overall|avg_price_paid|section"
// @Param order query string false "asc|desc"
// @Param limit query int false "1-100" default(20)
// @Param offset query int false ">= 0" default(0)
// @Success 200 {object} search.Page[SearchResult]
// @Router /search/seats [get]
func (c *Controller) Search(ctx *gin.Context) {
	page, err := c.service.Search(ctx.Request.Context(), ctx.Request.URL.Query())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *Controller) GetSeat(ctx *gin.Context) {
	seat, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", seat, nil)
}
