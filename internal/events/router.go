package events

import (
	"stagedoor/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public browsing
	public := rg.Group("/events")
	{
		public.GET("", controller.ListEvents)   // GET /api/v1/events
		public.GET("/:id", controller.GetEvent) // GET /api/v1/events/:id
	}

	// Event management
	admin := rg.Group("/admin/events")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateEvent)                        // POST /api/v1/admin/events
		admin.PUT("/:id", controller.UpdateEvent)                     // PUT /api/v1/admin/events/:id
		admin.DELETE("/:id", controller.DeleteEvent)                  // DELETE /api/v1/admin/events/:id
		admin.POST("/:id/layout-snapshot", controller.SnapshotLayout) // POST /api/v1/admin/events/:id/layout-snapshot
	}
}
