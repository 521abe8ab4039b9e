// internal/service/vehicle/vehicle.go
package vehicle

import (
	"context"

	"fleetrent-service/internal/domain/vehicle"
	xerrors "fleetrent-service/internal/pkg/errors"
	"fleetrent-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type VehicleService struct {
	repo   *postgres.VehicleRepository
	logger *zap.Logger
}

func NewVehicleService(repo *postgres.VehicleRepository, logger *zap.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

// CreateVehicle registers a new vehicle in the fleet
func (s *VehicleService) CreateVehicle(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	category := req.Category
	if category == "" {
		category = vehicle.CategoryOther
	}
	status := req.Status
	if status == "" {
		status = vehicle.StatusAvailable
	}
	if !vehicle.ValidStatus(status) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown vehicle status")
	}

	v := &vehicle.Vehicle{
		Brand:        req.Brand,
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		Company:      req.Company,
		Category:     category,
		Status:       status,
		Tags:         req.Tags,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle created",
		zap.Int64("vehicle_id", v.ID),
		zap.String("license_plate", v.LicensePlate),
	)
	return v, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return s.repo.FindByID(ctx, id)
}

// ListVehicles returns vehicles matching the filters
func (s *VehicleService) ListVehicles(ctx context.Context, f vehicle.ListFilters) ([]vehicle.Vehicle, error) {
	return s.repo.List(ctx, f)
}

// UpdateVehicle applies partial updates
func (s *VehicleService) UpdateVehicle(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	if req.Status != nil && !vehicle.ValidStatus(*req.Status) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown vehicle status")
	}
	return s.repo.Update(ctx, id, req)
}

// DeleteVehicle removes a vehicle from the registry
func (s *VehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("vehicle deleted", zap.Int64("vehicle_id", id))
	return nil
}
