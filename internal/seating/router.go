package seating

import "github.com/gin-gonic/gin"

func SetupSeatingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Guest-facing read surface, no auth
	seating := rg.Group("/seating")
	{
		seating.GET("/event/:eventId", controller.GetEventSeating)          // GET /api/v1/seating/event/:eventId
		seating.GET("/event/:eventId/view", controller.GetEventSeatingView) // GET /api/v1/seating/event/:eventId/view
	}
}
