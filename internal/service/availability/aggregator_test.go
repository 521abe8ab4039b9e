package availability

import (
	"testing"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/domain/rental"
	"fleetrent-service/internal/domain/unavailability"
	"fleetrent-service/internal/domain/vehicle"

	"go.uber.org/zap"
)

func buildTestGrid(t *testing.T) *domain.CalendarGrid {
	t.Helper()
	b := NewBuilder(zap.NewNop())
	rentals := []rental.Rental{{
		ID: 10, VehicleID: 1, CustomerName: "Jane Smith",
		StartDate: day("2026-03-01"), EndDate: day("2026-03-05"),
		Status: rental.StatusActive,
	}}
	windows := []unavailability.Window{{
		ID: 20, VehicleID: 2, Type: unavailability.TypeRepair,
		StartDate: day("2026-03-01"), EndDate: day("2026-03-10"),
		Priority: unavailability.PriorityNormal,
	}}
	return b.Build(day("2026-03-01"), day("2026-03-10"), testFleet(), rentals, windows)
}

func TestAggregateCounts(t *testing.T) {
	grid := buildTestGrid(t)
	summaries := Aggregate(grid, testFleet(), domain.FilterSet{})

	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	byID := make(map[int64]domain.Summary)
	for _, s := range summaries {
		byID[s.VehicleID] = s
		if s.TotalDays != 10 {
			t.Errorf("vehicle %d TotalDays = %d, want 10", s.VehicleID, s.TotalDays)
		}
		if len(s.DailyStatus) != 10 {
			t.Errorf("vehicle %d has %d daily entries, want 10", s.VehicleID, len(s.DailyStatus))
		}
	}

	// Vehicle 1: rented 5 of 10 days.
	if got := byID[1]; got.AvailableDays != 5 || got.AvailabilityPercent != 50 {
		t.Errorf("vehicle 1: %d days / %d%%, want 5 / 50", got.AvailableDays, got.AvailabilityPercent)
	}
	// Vehicle 2: repaired the whole window.
	if got := byID[2]; got.AvailableDays != 0 || got.AvailabilityPercent != 0 {
		t.Errorf("vehicle 2: %d days / %d%%, want 0 / 0", got.AvailableDays, got.AvailabilityPercent)
	}
	// Vehicle 3: lifecycle maintenance, never available.
	if got := byID[3]; got.AvailableDays != 0 {
		t.Errorf("vehicle 3 AvailableDays = %d, want 0", got.AvailableDays)
	}
	if byID[1].VehicleName != "Toyota Corolla" {
		t.Errorf("VehicleName = %q", byID[1].VehicleName)
	}
}

func TestAggregateMissingDaysCountAvailable(t *testing.T) {
	// A sparse grid: payload only carries one of three days.
	grid := &domain.CalendarGrid{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-03",
		Calendar: []domain.CalendarDay{
			{Date: "2026-03-01", Vehicles: []domain.VehicleDayStatus{
				{VehicleID: 1, DayStatus: domain.DayStatus{Status: domain.StatusRented, RentalID: 10}},
			}},
			{Date: "2026-03-02"},
			{Date: "2026-03-03"},
		},
	}
	fleet := []vehicle.Vehicle{{ID: 1, Brand: "Toyota", Model: "Corolla", Status: vehicle.StatusAvailable}}

	summaries := Aggregate(grid, fleet, domain.FilterSet{})
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	s := summaries[0]
	if s.AvailableDays != 2 || s.TotalDays != 3 {
		t.Errorf("sparse grid: %d/%d, want 2/3", s.AvailableDays, s.TotalDays)
	}
	if s.AvailabilityPercent != 67 {
		t.Errorf("percent = %d, want 67", s.AvailabilityPercent)
	}
}

func TestAggregateFilterChain(t *testing.T) {
	grid := buildTestGrid(t)
	fleet := testFleet()

	tests := []struct {
		name    string
		filters domain.FilterSet
		wantIDs []int64
	}{
		{"no filters", domain.FilterSet{}, []int64{1, 2, 3}},
		{"by brand", domain.FilterSet{Brands: []string{"Toyota"}}, []int64{1}},
		{"brands OR-combined", domain.FilterSet{Brands: []string{"Toyota", "Nissan"}}, []int64{1, 2}},
		{"min percent", domain.FilterSet{MinAvailabilityPercent: 40}, []int64{1}},
		{"available only excludes partial", domain.FilterSet{AvailableOnly: true}, []int64{}},
		{"brand and percent AND-combined", domain.FilterSet{Brands: []string{"Nissan"}, MinAvailabilityPercent: 40}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries := Aggregate(grid, fleet, tt.filters)
			got := make([]int64, 0, len(summaries))
			for _, s := range summaries {
				got = append(got, s.VehicleID)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got vehicles %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("got vehicles %v, want %v", got, tt.wantIDs)
				}
			}
		})
	}
}

func TestAggregateIdleVehicleIsFullyAvailable(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	fleet := []vehicle.Vehicle{{ID: 1, Brand: "Toyota", Model: "Corolla", Status: vehicle.StatusAvailable}}
	grid := b.Build(day("2026-01-01"), day("2026-01-07"), fleet, nil, nil)

	summaries := Aggregate(grid, fleet, domain.FilterSet{})
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	s := summaries[0]
	if s.AvailableDays != 7 || s.TotalDays != 7 || s.AvailabilityPercent != 100 {
		t.Errorf("idle vehicle: %d/%d at %d%%, want 7/7 at 100%%", s.AvailableDays, s.TotalDays, s.AvailabilityPercent)
	}

	// A fully available vehicle passes the availableOnly toggle.
	if got := Aggregate(grid, fleet, domain.FilterSet{AvailableOnly: true}); len(got) != 1 {
		t.Errorf("availableOnly dropped a 100%% vehicle")
	}
}

func TestDashboardFleet(t *testing.T) {
	all := []vehicle.Vehicle{
		{ID: 1, Brand: "Toyota", Model: "Corolla", LicensePlate: "B", Status: vehicle.StatusAvailable},
		{ID: 2, Brand: "Audi", Model: "A4", LicensePlate: "A", Status: vehicle.StatusRemoved},
		{ID: 3, Brand: "Audi", Model: "A4", LicensePlate: "C", Status: vehicle.StatusPrivate},
		{ID: 4, Brand: "Audi", Model: "A3", LicensePlate: "D", Status: vehicle.StatusTemporarilyRemoved},
		{ID: 5, Brand: "Audi", Model: "A4", LicensePlate: "A", Status: vehicle.StatusMaintenance},
	}

	fleet := DashboardFleet(all)
	if len(fleet) != 3 {
		t.Fatalf("got %d vehicles, want 3 (removed excluded)", len(fleet))
	}
	// Sorted by brand, model, plate.
	want := []int64{5, 3, 1}
	for i, v := range fleet {
		if v.ID != want[i] {
			t.Errorf("fleet[%d] = vehicle %d, want %d", i, v.ID, want[i])
		}
	}
}
