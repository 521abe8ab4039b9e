// internal/service/availability/snapshot.go
package availability

import (
	"context"
	"fmt"

	"fleetrent-service/internal/domain/rental"
	"fleetrent-service/internal/domain/unavailability"
	"fleetrent-service/internal/domain/vehicle"
)

// Snapshot is the in-memory entity set the engine computes from when the
// upstream calendar is unavailable. Whatever the snapshot holds is what
// the degraded grid reflects.
type Snapshot struct {
	Vehicles []vehicle.Vehicle
	Rentals  []rental.Rental
	Windows  []unavailability.Window
}

// SnapshotSource supplies the current entity snapshot.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type vehicleLister interface {
	ListAll(ctx context.Context) ([]vehicle.Vehicle, error)
}

type rentalLister interface {
	ListUnfinished(ctx context.Context) ([]rental.Rental, error)
}

type windowLister interface {
	ListAll(ctx context.Context) ([]unavailability.Window, error)
}

// RepoSnapshotSource assembles snapshots from the entity repositories.
// Only the dashboard fleet and non-finished rentals are loaded; finished
// rentals never participate in resolution.
type RepoSnapshotSource struct {
	vehicles vehicleLister
	rentals  rentalLister
	windows  windowLister
}

func NewRepoSnapshotSource(vehicles vehicleLister, rentals rentalLister, windows windowLister) *RepoSnapshotSource {
	return &RepoSnapshotSource{vehicles: vehicles, rentals: rentals, windows: windows}
}

func (s *RepoSnapshotSource) Snapshot(ctx context.Context) (Snapshot, error) {
	vehicles, err := s.vehicles.ListAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load vehicles: %w", err)
	}
	rentals, err := s.rentals.ListUnfinished(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load rentals: %w", err)
	}
	windows, err := s.windows.ListAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load unavailability windows: %w", err)
	}

	return Snapshot{
		Vehicles: DashboardFleet(vehicles),
		Rentals:  rentals,
		Windows:  windows,
	}, nil
}
