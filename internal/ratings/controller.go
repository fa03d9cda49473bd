package ratings

import (
	"net/http"

	"livelens/internal/search"
	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	aggregator *Aggregator
	engine     *search.Engine
}

func NewController(aggregator *Aggregator, engine *search.Engine) *Controller {
	return &Controller{aggregator: aggregator, engine: engine}
}

type RecomputeResponse struct {
	Processed int            `json:"processed"`
	Aggregate *SeatAggregate `json:"aggregate,omitempty"`
}

// Recompute godoc
// @Summary Recompute seat aggregates
// @Description Rebuilds one seat's aggregate when seat_id is given, otherwise every seat's.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param seat_id query string false "Seat id"
// @Success 200 {object} response.StandardApiResponse{data=RecomputeResponse}
// @Router /admin/aggregates/recompute [post]
func (c *Controller) Recompute(ctx *gin.Context) {
	reqCtx := ctx.Request.Context()

	var result RecomputeResponse
	if raw := ctx.Query("seat_id"); raw != "" {
		seatID, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(ctx, apperrors.InvalidInput("seat_id", "malformed identifier"))
			return
		}
		agg, err := c.aggregator.RecomputeSeat(reqCtx, seatID, TriggerBatch)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		result = RecomputeResponse{Processed: 1, Aggregate: agg}
	} else {
		processed, err := c.aggregator.RecomputeAll(reqCtx)
		if err != nil {
			response.RespondError(ctx, err)
			return
		}
		result = RecomputeResponse{Processed: processed}
	}

	c.engine.Invalidate(reqCtx, search.Seats.Name, search.Venues.Name)

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat aggregates recomputed", result, nil)
}
