package venues

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
// @Summary Search venues
// @Tags search
// @Produce json
// @Param q query string false "Free text over name and city"
// @Param city query string false "City (case-insensitive)"
// @Param min_capacity query number false "Minimum capacity"
// @Param max_capacity query number false "Maximum capacity"
// @Param min_rating query number false "Minimum average rating"
// @Param sort_by query string false "name|capacity|city|rating"
// @Param order query string false "asc|desc"
// @Param limit query int false "1-100" default(20)
// @Param offset query int false ">= 0" default(0)
// @Success 200 {object} search.Page[SearchResult]
// @Router /search/venues [get]
func (c *Controller) Search(ctx *gin.Context) {
	page, err := c.service.Search(ctx.Request.Context(), ctx.Request.URL.Query())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *Controller) GetVenue(ctx *gin.Context) {
	venue, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue retrieved successfully", venue, nil)
}

func (c *Controller) CreateVenue(ctx *gin.Context) {
	var req CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(ctx, err)
		return
	}

	venue, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue created successfully", venue, nil)
}
