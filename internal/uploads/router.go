package uploads

import (
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(authed *gin.RouterGroup, controller *Controller) {
	authed.POST("/uploads/presign", controller.PresignUpload) // POST /api/v1/uploads/presign
}
