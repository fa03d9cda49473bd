package events

import (
	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, controller *Controller) {
	rg.GET("/search/events", controller.Search) // GET /api/v1/search/events
	rg.GET("/events/:id", controller.GetEvent)  // GET /api/v1/events/:id

	admin.POST("/events", controller.CreateEvent) // POST /api/v1/admin/events
}
