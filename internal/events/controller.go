package events

import (
	"errors"
	"net/http"

	"stagedoor/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	event, err := c.service.CreateEvent(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create event", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Event created successfully", event, nil)
}

func (c *Controller) GetEvent(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	event, err := c.service.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get event", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}

func (c *Controller) ListEvents(ctx *gin.Context) {
	events, err := c.service.ListEvents(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list events", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Events retrieved successfully", events, nil)
}

func (c *Controller) UpdateEvent(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	var req UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	event, err := c.service.UpdateEvent(ctx.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update event", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event updated successfully", event, nil)
}

func (c *Controller) DeleteEvent(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	if err := c.service.DeleteEvent(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete event", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event deleted successfully", nil, nil)
}

func (c *Controller) SnapshotLayout(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	var req SnapshotLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.service.SnapshotLayout(ctx.Request.Context(), id, req); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to snapshot layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Layout snapshot created successfully", nil, nil)
}
