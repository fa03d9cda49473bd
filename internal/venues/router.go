package venues

import (
	"github.com/gin-gonic/gin"
)

// SetupVenueRoutes registers public venue routes on rg and admin routes on admin
func SetupVenueRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, controller *Controller) {
	rg.GET("/search/venues", controller.Search) // GET /api/v1/search/venues
	rg.GET("/venues/:id", controller.GetVenue)  // GET /api/v1/venues/:id

	admin.POST("/venues", controller.CreateVenue) // POST /api/v1/admin/venues
}
