// internal/service/availability/aggregator.go
package availability

import (
	"math"
	"sort"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/domain/vehicle"
)

// Aggregate reduces a grid into per-vehicle summaries and applies the
// filter chain. Days absent from the grid payload for a vehicle count as
// available, matching the calendar contract. For every summary
// AvailableDays plus the other status counts equals TotalDays.
func Aggregate(grid *domain.CalendarGrid, fleet []vehicle.Vehicle, filters domain.FilterSet) []domain.Summary {
	idx := grid.Index()

	summaries := make([]domain.Summary, 0, len(fleet))
	for _, v := range fleet {
		daily := make([]domain.DailyEntry, 0, len(grid.Calendar))
		available := 0
		for _, day := range grid.Calendar {
			status, ok := idx[day.Date][v.ID]
			if !ok {
				status = domain.DayStatus{Status: domain.StatusAvailable}
			}
			if status.Status == domain.StatusAvailable {
				available++
			}
			daily = append(daily, domain.DailyEntry{Date: day.Date, DayStatus: status})
		}

		total := len(daily)
		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(available) / float64(total) * 100))
		}

		s := domain.Summary{
			VehicleID:           v.ID,
			VehicleName:         v.Name(),
			LicensePlate:        v.LicensePlate,
			Brand:               v.Brand,
			Category:            v.Category,
			Company:             v.Company,
			DailyStatus:         daily,
			AvailableDays:       available,
			TotalDays:           total,
			AvailabilityPercent: percent,
		}
		if filters.Match(s) {
			summaries = append(summaries, s)
		}
	}
	return summaries
}

// SortFleet orders vehicles the way the dashboard lists them: brand, then
// model, then license plate.
func SortFleet(fleet []vehicle.Vehicle) {
	sort.Slice(fleet, func(i, j int) bool {
		a, b := fleet[i], fleet[j]
		if a.Brand != b.Brand {
			return a.Brand < b.Brand
		}
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		return a.LicensePlate < b.LicensePlate
	})
}

// DashboardFleet filters the registry down to vehicles that belong on the
// availability grid and sorts them for display.
func DashboardFleet(all []vehicle.Vehicle) []vehicle.Vehicle {
	fleet := make([]vehicle.Vehicle, 0, len(all))
	for _, v := range all {
		if v.InFleet() {
			fleet = append(fleet, v)
		}
	}
	SortFleet(fleet)
	return fleet
}
