// internal/handlers/availability/availability.go
package availability

import (
	"errors"
	"net/http"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/pkg/dates"
	xerrors "fleetrent-service/internal/pkg/errors"
	"fleetrent-service/internal/pkg/response"
	service "fleetrent-service/internal/service/availability"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityService *service.Service
	manager             *service.Manager
}

func NewAvailabilityHandler(availabilityService *service.Service, manager *service.Manager) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
		manager:             manager,
	}
}

// GetCalendar serves the resolved grid for an explicit window.
// GET /availability/calendar?startDate=yyyy-mm-dd&endDate=yyyy-mm-dd
func (h *AvailabilityHandler) GetCalendar(c *gin.Context) {
	from, err := dates.Parse(c.Query("startDate"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid startDate", err)
		return
	}
	to, err := dates.Parse(c.Query("endDate"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid endDate", err)
		return
	}

	grid, err := h.availabilityService.Calendar(c.Request.Context(), from, to, c.Query("refresh") == "true")
	if err != nil {
		writeError(c, "failed to resolve calendar", err)
		return
	}

	response.Success(c, http.StatusOK, "calendar resolved", grid)
}

// GetAvailability serves filtered per-vehicle summaries.
// GET /availability?dateFrom=&dateTo=&categories=&brands=&companies=&availableOnly=&minAvailabilityPercent=
// Missing dates default to the most common ask: today through today+7.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	var filters domain.FilterSet
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	today := dates.Day(time.Now())
	from, to := today, dates.AddDays(today, 7)

	if s := c.Query("dateFrom"); s != "" {
		var err error
		if from, err = dates.Parse(s); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid dateFrom", err)
			return
		}
	}
	if s := c.Query("dateTo"); s != "" {
		var err error
		if to, err = dates.Parse(s); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid dateTo", err)
			return
		}
	}

	summaries, err := h.availabilityService.Summaries(c.Request.Context(), from, to, filters, c.Query("refresh") == "true")
	if err != nil {
		writeError(c, "failed to aggregate availability", err)
		return
	}

	response.Success(c, http.StatusOK, "availability aggregated", summaries)
}

// ========== Progressive dashboard ==========

// GetDashboard returns the current dashboard view, resolving it first if
// nothing has been resolved yet. ?refresh=true forces a recomputation.
func (h *AvailabilityHandler) GetDashboard(c *gin.Context) {
	force := c.Query("refresh") == "true"
	if view := h.manager.View(); view != nil && !force {
		response.Success(c, http.StatusOK, "dashboard view", view)
		return
	}

	view, err := h.manager.Refresh(c.Request.Context(), force)
	if err != nil {
		writeError(c, "failed to resolve dashboard", err)
		return
	}
	response.Success(c, http.StatusOK, "dashboard view", view)
}

// LoadMoreDays extends the dashboard window 14 days into the future.
func (h *AvailabilityHandler) LoadMoreDays(c *gin.Context) {
	view, err := h.manager.LoadMoreDays(c.Request.Context())
	if err != nil {
		writeError(c, "failed to load more days", err)
		return
	}
	response.Success(c, http.StatusOK, "window extended", view)
}

// LoadPastDays extends the dashboard window 7 days into the past.
func (h *AvailabilityHandler) LoadPastDays(c *gin.Context) {
	view, err := h.manager.LoadPastDays(c.Request.Context())
	if err != nil {
		writeError(c, "failed to load past days", err)
		return
	}
	response.Success(c, http.StatusOK, "window extended", view)
}

// ApplyPreset resets the dashboard window to a quick-filter shape.
func (h *AvailabilityHandler) ApplyPreset(c *gin.Context) {
	view, err := h.manager.ApplyPreset(c.Request.Context(), service.Preset(c.Param("preset")))
	if err != nil {
		writeError(c, "failed to apply preset", err)
		return
	}
	response.Success(c, http.StatusOK, "preset applied", view)
}

// SetFilters replaces the dashboard summary filters.
func (h *AvailabilityHandler) SetFilters(c *gin.Context) {
	var filters domain.FilterSet
	if err := c.ShouldBindJSON(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	view, err := h.manager.SetFilters(c.Request.Context(), filters)
	if err != nil {
		writeError(c, "failed to apply filters", err)
		return
	}
	response.Success(c, http.StatusOK, "filters applied", view)
}

func writeError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrSuperseded):
		response.Error(c, http.StatusConflict, "request superseded", err)
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, message)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
