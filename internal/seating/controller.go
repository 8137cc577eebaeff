package seating

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stagedoor/internal/geometry"
	"stagedoor/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetEventSeating(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	seating, err := c.service.GetEventSeating(ctx.Request.Context(), eventID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get event seating", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event seating retrieved successfully", seating, nil)
}

func (c *Controller) GetEventSeatingView(ctx *gin.Context) {
	eventID := ctx.Param("eventId")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	opts := ViewOptions{
		Interactive: ctx.Query("interactive") == "true",
	}

	if w, werr := strconv.ParseFloat(ctx.Query("viewport_width"), 64); werr == nil {
		if h, herr := strconv.ParseFloat(ctx.Query("viewport_height"), 64); herr == nil && w > 0 && h > 0 {
			opts.Viewport = &geometry.Size{Width: w, Height: h}
		}
	}

	if selected := ctx.Query("selected"); selected != "" {
		opts.Selected = strings.Split(selected, ",")
	}

	view, err := c.service.GetEventSeatingView(ctx.Request.Context(), eventID, opts)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get seating view", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seating view retrieved successfully", view, nil)
}
