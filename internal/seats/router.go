package seats

import (
	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/search/seats", controller.Search) // GET /api/v1/search/seats
	rg.GET("/seats/:id", controller.GetSeat)   // GET /api/v1/seats/:id
}
