// internal/handlers/unavailability/unavailability.go
package unavailability

import (
	"errors"
	"net/http"
	"strconv"

	"fleetrent-service/internal/domain/unavailability"
	xerrors "fleetrent-service/internal/pkg/errors"
	"fleetrent-service/internal/pkg/response"
	service "fleetrent-service/internal/service/unavailability"

	"github.com/gin-gonic/gin"
)

type UnavailabilityHandler struct {
	unavailabilityService *service.UnavailabilityService
}

func NewUnavailabilityHandler(unavailabilityService *service.UnavailabilityService) *UnavailabilityHandler {
	return &UnavailabilityHandler{unavailabilityService: unavailabilityService}
}

// CreateWindow declares a new unavailability window
func (h *UnavailabilityHandler) CreateWindow(c *gin.Context) {
	var req unavailability.CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.unavailabilityService.CreateWindow(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "failed to create unavailability window", err)
		return
	}

	response.Success(c, http.StatusCreated, "unavailability window created", result)
}

// GetWindow retrieves a window by ID
func (h *UnavailabilityHandler) GetWindow(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid window ID", err)
		return
	}

	result, err := h.unavailabilityService.GetWindow(c.Request.Context(), id)
	if err != nil {
		writeError(c, "unavailability window not found", err)
		return
	}

	response.Success(c, http.StatusOK, "unavailability window retrieved", result)
}

// ListWindows lists windows by vehicle with an optional date range.
// GET /vehicle-unavailability?vehicleId=&startDate=&endDate=
func (h *UnavailabilityHandler) ListWindows(c *gin.Context) {
	var filters unavailability.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.unavailabilityService.ListWindows(c.Request.Context(), filters)
	if err != nil {
		writeError(c, "failed to list unavailability windows", err)
		return
	}

	response.Success(c, http.StatusOK, "unavailability windows retrieved", result)
}

// UpdateWindow edits a window
func (h *UnavailabilityHandler) UpdateWindow(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid window ID", err)
		return
	}

	var req unavailability.UpdateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.unavailabilityService.UpdateWindow(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, "failed to update unavailability window", err)
		return
	}

	response.Success(c, http.StatusOK, "unavailability window updated", result)
}

// DeleteWindow removes a window
func (h *UnavailabilityHandler) DeleteWindow(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid window ID", err)
		return
	}

	if err := h.unavailabilityService.DeleteWindow(c.Request.Context(), id); err != nil {
		writeError(c, "failed to delete unavailability window", err)
		return
	}

	response.Success(c, http.StatusOK, "unavailability window deleted", nil)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func writeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, xerrors.ErrDuplicateUnavailability):
		// The wire code must reach the client verbatim.
		response.Conflict(c, xerrors.ErrDuplicateUnavailability.Error(), err)
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, message)
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
