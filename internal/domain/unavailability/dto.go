package unavailability

// CreateWindowRequest for declaring a new unavailability window.
// Dates are yyyy-mm-dd.
type CreateWindowRequest struct {
	VehicleID int64  `json:"vehicle_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Type      Type   `json:"type" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Notes     string `json:"notes"`
	Priority  int    `json:"priority"`
	Recurring bool   `json:"recurring"`
}

// UpdateWindowRequest for editing an existing window
type UpdateWindowRequest struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Type      *Type   `json:"type,omitempty"`
	Reason    *string `json:"reason,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Priority  *int    `json:"priority,omitempty"`
	Recurring *bool   `json:"recurring,omitempty"`
}

// ListFilters for querying windows, used by the calendar edit flow
// (vehicle plus an optional date range).
type ListFilters struct {
	VehicleID int64  `form:"vehicleId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
