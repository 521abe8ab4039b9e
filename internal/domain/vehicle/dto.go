package vehicle

// CreateVehicleRequest for registering a new vehicle
type CreateVehicleRequest struct {
	Brand        string   `json:"brand" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	LicensePlate string   `json:"license_plate" binding:"required"`
	Company      string   `json:"company"`
	Category     Category `json:"category"`
	Status       Status   `json:"status"`
	Tags         []string `json:"tags"`
}

// UpdateVehicleRequest for updating vehicle details
type UpdateVehicleRequest struct {
	Brand        *string   `json:"brand,omitempty"`
	Model        *string   `json:"model,omitempty"`
	LicensePlate *string   `json:"license_plate,omitempty"`
	Company      *string   `json:"company,omitempty"`
	Category     *Category `json:"category,omitempty"`
	Status       *Status   `json:"status,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
}

// ListFilters for listing/searching vehicles
type ListFilters struct {
	Company  string   `form:"company"`
	Category Category `form:"category"`
	Status   Status   `form:"status"`
	Search   string   `form:"search"` // plate, brand, model
}
