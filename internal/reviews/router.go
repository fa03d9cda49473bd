package reviews

import (
	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes registers review search on rg and submission on authed,
// which must carry the identity middleware.
func SetupReviewRoutes(rg *gin.RouterGroup, authed *gin.RouterGroup, controller *Controller) {
	rg.GET("/search/reviews", controller.Search) // GET /api/v1/search/reviews

	authed.POST("/reviews", controller.SubmitReview) // POST /api/v1/reviews
}
