package requests

import (
	"stagedoor/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRequestRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Guest surface, no auth: requests and holds are anonymous
	rg.POST("/seat-requests", controller.SubmitRequest) // POST /api/v1/seat-requests

	holds := rg.Group("/seat-holds")
	{
		holds.POST("", controller.PlaceHold)             // POST /api/v1/seat-holds
		holds.GET("/:holdId", controller.GetHold)        // GET /api/v1/seat-holds/:holdId
		holds.DELETE("/:holdId", controller.ReleaseHold) // DELETE /api/v1/seat-holds/:holdId
	}

	// Admin decision surface
	admin := rg.Group("/admin/seat-requests")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListRequests)               // GET /api/v1/admin/seat-requests
		admin.GET("/:id", controller.GetRequest)             // GET /api/v1/admin/seat-requests/:id
		admin.PUT("/:id/approve", controller.ApproveRequest) // PUT /api/v1/admin/seat-requests/:id/approve
		admin.PUT("/:id/deny", controller.DenyRequest)       // PUT /api/v1/admin/seat-requests/:id/deny
	}
}
