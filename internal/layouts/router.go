package layouts

import (
	"stagedoor/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLayoutRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public read access for the seating view and editor bootstrap
	public := rg.Group("/seating-layouts")
	{
		public.GET("/default", controller.GetDefaultLayout) // GET /api/v1/seating-layouts/default
		public.GET("/:id", controller.GetLayout)            // GET /api/v1/seating-layouts/:id

		// Saving a layout is an editor action
		public.PUT("/:id", middleware.JWTAuth(), middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleEditor), controller.SaveLayout)
	}

	// Layout management
	admin := rg.Group("/admin/seating-layouts")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateLayout)                 // POST /api/v1/admin/seating-layouts
		admin.GET("", controller.ListLayouts)                   // GET /api/v1/admin/seating-layouts
		admin.DELETE("/:id", controller.DeleteLayout)           // DELETE /api/v1/admin/seating-layouts/:id
		admin.POST("/:id/default", controller.SetDefaultLayout) // POST /api/v1/admin/seating-layouts/:id/default
	}
}
