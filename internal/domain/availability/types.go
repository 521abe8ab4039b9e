package availability

// internal/domain/availability/types.go
import (
	"fleetrent-service/internal/domain/unavailability"
	"fleetrent-service/internal/domain/vehicle"
)

// Status is the single authoritative per-vehicle, per-day state after
// merging rentals and unavailability windows.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusRented      Status = "rented"
	StatusFlexible    Status = "flexible"
	StatusUnavailable Status = "unavailable"
	StatusMaintenance Status = "maintenance"
)

// DayStatus is one resolved cell plus its attribution metadata.
type DayStatus struct {
	Status             Status              `json:"status"`
	RentalID           int64               `json:"rentalId,omitempty"`
	CustomerName       string              `json:"customerName,omitempty"`
	UnavailabilityType unavailability.Type `json:"unavailabilityType,omitempty"`
	Reason             string              `json:"unavailabilityReason,omitempty"`
}

// VehicleDayStatus is a DayStatus tagged with its vehicle, as carried on
// the calendar wire format.
type VehicleDayStatus struct {
	VehicleID int64 `json:"vehicleId"`
	DayStatus
}

// CalendarDay holds every vehicle's status for one day.
type CalendarDay struct {
	Date     string             `json:"date"` // yyyy-mm-dd
	Vehicles []VehicleDayStatus `json:"vehicles"`
}

// GridSource records which path produced a grid.
type GridSource string

const (
	SourceRemote GridSource = "remote"
	SourceCache  GridSource = "cache"
	SourceLocal  GridSource = "local"
)

// CalendarGrid is the computed date x vehicle -> status structure for one
// window. Grids are immutable once built; a window change produces a new
// grid rather than mutating the old one.
type CalendarGrid struct {
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Calendar  []CalendarDay `json:"calendar"`
	Source    GridSource    `json:"source,omitempty"`
}

// GridIndex is a date -> vehicleId -> DayStatus lookup built from a grid.
type GridIndex map[string]map[int64]DayStatus

// Index builds a lookup table over the grid. Days or vehicles absent from
// the payload simply miss; callers treat a miss as available, matching the
// upstream calendar contract.
func (g *CalendarGrid) Index() GridIndex {
	idx := make(GridIndex, len(g.Calendar))
	for _, day := range g.Calendar {
		vehicles := make(map[int64]DayStatus, len(day.Vehicles))
		for _, v := range day.Vehicles {
			vehicles[v.VehicleID] = v.DayStatus
		}
		idx[day.Date] = vehicles
	}
	return idx
}

// DailyEntry is one dated cell inside a vehicle's summary sequence.
type DailyEntry struct {
	Date string `json:"date"`
	DayStatus
}

// Summary aggregates one vehicle's availability over a window.
type Summary struct {
	VehicleID           int64            `json:"vehicleId"`
	VehicleName         string           `json:"vehicleName"`
	LicensePlate        string           `json:"licensePlate"`
	Brand               string           `json:"brand"`
	Category            vehicle.Category `json:"category"`
	Company             string           `json:"company"`
	DailyStatus         []DailyEntry     `json:"dailyStatus"`
	AvailableDays       int              `json:"availableDays"`
	TotalDays           int              `json:"totalDays"`
	AvailabilityPercent int              `json:"availabilityPercent"`
}

// FilterSet narrows aggregated summaries. Filters are AND-combined in
// declaration order; values inside one filter are OR-combined.
type FilterSet struct {
	Categories             []vehicle.Category `form:"categories"`
	Brands                 []string           `form:"brands"`
	Companies              []string           `form:"companies"`
	AvailableOnly          bool               `form:"availableOnly"`
	MinAvailabilityPercent int                `form:"minAvailabilityPercent"`
}

// Match applies the filter chain to one summary: category, brand, company,
// availableOnly, then the minimum-percent threshold.
func (f FilterSet) Match(s Summary) bool {
	if len(f.Categories) > 0 && !containsCategory(f.Categories, s.Category) {
		return false
	}
	if len(f.Brands) > 0 && !containsString(f.Brands, s.Brand) {
		return false
	}
	if len(f.Companies) > 0 && !containsString(f.Companies, s.Company) {
		return false
	}
	if f.AvailableOnly && s.AvailabilityPercent < 100 {
		return false
	}
	if s.AvailabilityPercent < f.MinAvailabilityPercent {
		return false
	}
	return true
}

func containsCategory(set []vehicle.Category, c vehicle.Category) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
