package ratings

import (
	"github.com/gin-gonic/gin"
)

func SetupRatingRoutes(admin *gin.RouterGroup, controller *Controller) {
	admin.POST("/aggregates/recompute", controller.Recompute) // POST /api/v1/admin/aggregates/recompute
}
