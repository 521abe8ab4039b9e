// internal/handlers/rental/rental.go
package rental

import (
	"errors"
	"net/http"
	"strconv"

	"fleetrent-service/internal/domain/rental"
	xerrors "fleetrent-service/internal/pkg/errors"
	"fleetrent-service/internal/pkg/response"
	service "fleetrent-service/internal/service/rental"

	"github.com/gin-gonic/gin"
)

type RentalHandler struct {
	rentalService *service.RentalService
}

func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// CreateRental books a vehicle
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req rental.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.rentalService.CreateRental(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "failed to create rental", err)
		return
	}

	response.Success(c, http.StatusCreated, "rental created successfully", result)
}

// GetRental retrieves a rental by ID
func (h *RentalHandler) GetRental(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid rental ID", err)
		return
	}

	result, err := h.rentalService.GetRental(c.Request.Context(), id)
	if err != nil {
		writeError(c, "rental not found", err)
		return
	}

	response.Success(c, http.StatusOK, "rental retrieved", result)
}

// ListRentals lists rentals matching the query filters
func (h *RentalHandler) ListRentals(c *gin.Context) {
	var filters rental.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.rentalService.ListRentals(c.Request.Context(), filters)
	if err != nil {
		writeError(c, "failed to list rentals", err)
		return
	}

	response.Success(c, http.StatusOK, "rentals retrieved", result)
}

// UpdateRental edits a booking
func (h *RentalHandler) UpdateRental(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid rental ID", err)
		return
	}

	var req rental.UpdateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.rentalService.UpdateRental(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, "failed to update rental", err)
		return
	}

	response.Success(c, http.StatusOK, "rental updated", result)
}

// DeleteRental cancels a booking
func (h *RentalHandler) DeleteRental(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid rental ID", err)
		return
	}

	if err := h.rentalService.DeleteRental(c.Request.Context(), id); err != nil {
		writeError(c, "failed to delete rental", err)
		return
	}

	response.Success(c, http.StatusOK, "rental deleted", nil)
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
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
