package events

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
// @Summary Search events
// @Tags search
// @Produce json
// @Param q query string false "Free text over name and artist"
// @Param venue_id query string false "Venue id"
// @Param genre query string false "Genre (case-insensitive)"
// @Param city query string false "Venue city (case-insensitive)"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param sort_by query string false "name|event_date|artist"
// @Param order query string false "asc|desc"
// @Param limit query int false "1-100" default(20)
// @Param offset query int false ">= 0" default(0)
// @Success 200 {object} search.Page[SearchResult]
// @Router /search/events [get]
func (c *Controller) Search(ctx *gin.Context) {
	page, err := c.service.Search(ctx.Request.Context(), ctx.Request.URL.Query())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (c *Controller) GetEvent(ctx *gin.Context) {
	event, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindError(ctx, err)
		return
	}

	event, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event created successfully", event, nil)
}
