// internal/handlers/vehicle/vehicle.go
package vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"fleetrent-service/internal/domain/vehicle"
	xerrors "fleetrent-service/internal/pkg/errors"
	"fleetrent-service/internal/pkg/response"
	service "fleetrent-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
}

func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// CreateVehicle registers a new vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.vehicleService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "failed to create vehicle", err)
		return
	}

	response.Success(c, http.StatusCreated, "vehicle created successfully", result)
}

// GetVehicle retrieves a vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	result, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		writeError(c, "vehicle not found", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", result)
}

// ListVehicles lists vehicles matching the query filters
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var filters vehicle.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.vehicleService.ListVehicles(c.Request.Context(), filters)
	if err != nil {
		writeError(c, "failed to list vehicles", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", result)
}

// UpdateVehicle applies partial updates to a vehicle
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.vehicleService.UpdateVehicle(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, "failed to update vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle updated", result)
}

// DeleteVehicle removes a vehicle
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		writeError(c, "failed to delete vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle deleted", nil)
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func writeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, message)
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	case errors.Is(err, xerrors.ErrConflict):
		response.Conflict(c, message, err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
