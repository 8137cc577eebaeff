package requests

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

func (c *Controller) SubmitRequest(ctx *gin.Context) {
	var req SubmitRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	request, err := c.service.SubmitRequest(ctx.Request.Context(), req)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Some selected seats are no longer available", nil, map[string]interface{}{
				"conflictingSeats": conflict.Seats,
			})
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to submit seat request", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seat request submitted successfully", request, nil)
}

func (c *Controller) PlaceHold(ctx *gin.Context) {
	var req PlaceHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	hold, err := c.service.PlaceHold(ctx.Request.Context(), req)
	if err != nil {
		var conflict *HoldConflictError
		if errors.As(err, &conflict) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "Some seats are already held", nil, map[string]interface{}{
				"conflictingSeats": conflict.Seats,
			})
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to place hold", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats held successfully", hold, nil)
}

func (c *Controller) ReleaseHold(ctx *gin.Context) {
	holdID := ctx.Param("holdId")
	if holdID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Hold ID is required", nil, "missing hold ID")
		return
	}

	if err := c.service.ReleaseHold(ctx.Request.Context(), holdID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrHoldNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to release hold", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold released successfully", nil, nil)
}

func (c *Controller) GetHold(ctx *gin.Context) {
	holdID := ctx.Param("holdId")
	if holdID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Hold ID is required", nil, "missing hold ID")
		return
	}

	hold, err := c.service.GetHold(ctx.Request.Context(), holdID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrHoldNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get hold", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold retrieved successfully", hold, nil)
}

func (c *Controller) GetRequest(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Request ID is required", nil, "missing request ID")
		return
	}

	request, err := c.service.GetRequest(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrRequestNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get request", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Request retrieved successfully", request, nil)
}

func (c *Controller) ListRequests(ctx *gin.Context) {
	var filters Filters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	requests, err := c.service.ListRequests(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list requests", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Requests retrieved successfully", requests, nil)
}

func (c *Controller) ApproveRequest(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Request ID is required", nil, "missing request ID")
		return
	}

	request, err := c.service.ApproveRequest(ctx.Request.Context(), id, adminIdentity(ctx))
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.As(err, &conflict):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Request conflicts with already approved seats", nil, map[string]interface{}{
				"conflictingSeats": conflict.Seats,
			})
		case errors.Is(err, ErrRequestNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Failed to approve request", nil, err.Error())
		case errors.Is(err, ErrAlreadyDecided):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Request has already been decided", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to approve request", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Request approved successfully", request, nil)
}

func (c *Controller) DenyRequest(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Request ID is required", nil, "missing request ID")
		return
	}

	request, err := c.service.DenyRequest(ctx.Request.Context(), id, adminIdentity(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Failed to deny request", nil, err.Error())
		case errors.Is(err, ErrAlreadyDecided):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Request has already been decided", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to deny request", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Request denied successfully", request, nil)
}

// adminIdentity pulls the acting admin's identity from the JWT claims set by
// the auth middleware.
func adminIdentity(ctx *gin.Context) string {
	if email, ok := ctx.Get("user_email"); ok {
		if s, ok := email.(string); ok && s != "" {
			return s
		}
	}
	if id, ok := ctx.Get("user_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
