package layouts

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

func (c *Controller) GetLayout(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	layout, err := c.service.GetLayout(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLayoutNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", layout, nil)
}

func (c *Controller) GetDefaultLayout(ctx *gin.Context) {
	layout, err := c.service.GetDefaultLayout(ctx.Request.Context())
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrNoDefaultLayout) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get default layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Default layout retrieved successfully", layout, nil)
}

func (c *Controller) ListLayouts(ctx *gin.Context) {
	layouts, err := c.service.ListLayouts(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list layouts", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layouts retrieved successfully", layouts, nil)
}

func (c *Controller) CreateLayout(ctx *gin.Context) {
	var req CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.CreateLayout(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Layout created successfully", layout, nil)
}

func (c *Controller) SaveLayout(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	var req SaveLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.SaveLayout(ctx.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLayoutNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to save layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout saved successfully", layout, nil)
}

func (c *Controller) DeleteLayout(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	if err := c.service.DeleteLayout(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLayoutNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout deleted successfully", nil, nil)
}

func (c *Controller) SetDefaultLayout(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Layout ID is required", nil, "missing layout ID")
		return
	}

	if err := c.service.SetDefaultLayout(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLayoutNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to set default layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Default layout updated successfully", nil, nil)
}
