package rental

// CreateRentalRequest for creating a booking. Dates are yyyy-mm-dd.
type CreateRentalRequest struct {
	VehicleID    int64  `json:"vehicle_id" binding:"required"`
	CustomerName string `json:"customer_name" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	IsFlexible   bool   `json:"is_flexible"`
}

// UpdateRentalRequest for editing a booking
type UpdateRentalRequest struct {
	CustomerName *string `json:"customer_name,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	IsFlexible   *bool   `json:"is_flexible,omitempty"`
	Status       *Status `json:"status,omitempty"`
}

// ListFilters for listing rentals
type ListFilters struct {
	VehicleID int64  `form:"vehicle_id"`
	Status    Status `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
