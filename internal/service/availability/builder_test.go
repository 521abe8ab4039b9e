package availability

import (
	"reflect"
	"testing"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/domain/rental"
	"fleetrent-service/internal/domain/unavailability"
	"fleetrent-service/internal/domain/vehicle"
	"fleetrent-service/internal/pkg/dates"

	"go.uber.org/zap"
)

func testFleet() []vehicle.Vehicle {
	return []vehicle.Vehicle{
		{ID: 1, Brand: "Toyota", Model: "Corolla", LicensePlate: "KAA 001A", Status: vehicle.StatusAvailable},
		{ID: 2, Brand: "Nissan", Model: "Note", LicensePlate: "KBB 002B", Status: vehicle.StatusAvailable},
		{ID: 3, Brand: "Mazda", Model: "Demio", LicensePlate: "KCC 003C", Status: vehicle.StatusMaintenance},
	}
}

func TestBuildCoversEveryDayAndVehicle(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	from, to := day("2026-03-01"), day("2026-03-07")

	grid := b.Build(from, to, testFleet(), nil, nil)

	if grid.StartDate != "2026-03-01" || grid.EndDate != "2026-03-07" {
		t.Errorf("grid bounds = %s..%s", grid.StartDate, grid.EndDate)
	}
	if len(grid.Calendar) != 7 {
		t.Fatalf("got %d days, want 7", len(grid.Calendar))
	}
	for _, d := range grid.Calendar {
		if len(d.Vehicles) != 3 {
			t.Fatalf("day %s has %d vehicles, want 3", d.Date, len(d.Vehicles))
		}
	}

	idx := grid.Index()
	if got := idx["2026-03-04"][3].Status; got != domain.StatusMaintenance {
		t.Errorf("maintenance vehicle resolved %s", got)
	}
	if got := idx["2026-03-04"][1].Status; got != domain.StatusAvailable {
		t.Errorf("idle vehicle resolved %s", got)
	}
}

func TestBuildAppliesRecordsToOwningVehicleOnly(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	from, to := day("2026-03-01"), day("2026-03-10")

	rentals := []rental.Rental{{
		ID: 10, VehicleID: 1, CustomerName: "Jane Smith",
		StartDate: day("2026-03-03"), EndDate: day("2026-03-05"),
		Status: rental.StatusActive,
	}}
	windows := []unavailability.Window{{
		ID: 20, VehicleID: 2, Type: unavailability.TypeService,
		StartDate: day("2026-03-06"), EndDate: day("2026-03-08"),
		Reason: "scheduled service", Priority: unavailability.PriorityNormal,
	}}

	idx := b.Build(from, to, testFleet(), rentals, windows).Index()

	if got := idx["2026-03-04"][1]; got.Status != domain.StatusRented || got.RentalID != 10 {
		t.Errorf("vehicle 1 on rented day: %+v", got)
	}
	if got := idx["2026-03-04"][2].Status; got != domain.StatusAvailable {
		t.Errorf("rental leaked onto vehicle 2: %s", got)
	}
	if got := idx["2026-03-07"][2]; got.Status != domain.StatusUnavailable || got.UnavailabilityType != unavailability.TypeService {
		t.Errorf("vehicle 2 on service day: %+v", got)
	}
	if got := idx["2026-03-06"][1].Status; got != domain.StatusAvailable {
		t.Errorf("window leaked onto vehicle 1: %s", got)
	}
}

func TestBuildExcludesMalformedRecords(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	from, to := day("2026-03-01"), day("2026-03-05")

	rentals := []rental.Rental{{
		ID: 10, VehicleID: 1,
		StartDate: day("2026-03-05"), EndDate: day("2026-03-01"), // reversed
		Status: rental.StatusActive,
	}}
	windows := []unavailability.Window{{
		ID: 20, VehicleID: 2, Type: unavailability.TypeBlocked,
		// zero start date
		EndDate: day("2026-03-05"), Priority: unavailability.PriorityNormal,
	}}

	idx := b.Build(from, to, testFleet(), rentals, windows).Index()
	for _, d := range dates.Range(from, to) {
		key := dates.Format(d)
		if got := idx[key][1].Status; got != domain.StatusAvailable {
			t.Errorf("malformed rental applied on %s: %s", key, got)
		}
		if got := idx[key][2].Status; got != domain.StatusAvailable {
			t.Errorf("malformed window applied on %s: %s", key, got)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	from, to := day("2026-03-01"), day("2026-03-31")

	rentals := []rental.Rental{
		{ID: 10, VehicleID: 1, StartDate: day("2026-03-03"), EndDate: day("2026-03-12"), Status: rental.StatusActive},
		{ID: 11, VehicleID: 2, StartDate: day("2026-03-08"), EndDate: day("2026-03-20"), Status: rental.StatusPending},
	}
	windows := []unavailability.Window{
		{ID: 20, VehicleID: 1, Type: unavailability.TypePrivateRental, StartDate: day("2026-03-10"), EndDate: day("2026-03-14"), Priority: unavailability.PriorityNormal},
		{ID: 21, VehicleID: 2, Type: unavailability.TypeRepair, StartDate: day("2026-03-18"), EndDate: day("2026-03-25"), Priority: unavailability.PriorityCritical},
	}

	first := b.Build(from, to, testFleet(), rentals, windows)
	second := b.Build(from, to, testFleet(), rentals, windows)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical grids")
	}
}

func TestBuildEmptyWindow(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	grid := b.Build(day("2026-03-10"), day("2026-03-01"), testFleet(), nil, nil)
	if len(grid.Calendar) != 0 {
		t.Errorf("reversed window must produce an empty calendar, got %d days", len(grid.Calendar))
	}
}
