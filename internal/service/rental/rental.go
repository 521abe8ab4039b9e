// internal/service/rental/rental.go
package rental

import (
	"context"
	"time"

	"fleetrent-service/internal/domain/rental"
	"fleetrent-service/internal/pkg/dates"
	xerrors "fleetrent-service/internal/pkg/errors"
	"fleetrent-service/internal/repository/postgres"
	availsvc "fleetrent-service/internal/service/availability"

	"go.uber.org/zap"
)

type RentalService struct {
	repo        *postgres.RentalRepository
	invalidator availsvc.Invalidator
	logger      *zap.Logger
}

func NewRentalService(repo *postgres.RentalRepository, invalidator availsvc.Invalidator, logger *zap.Logger) *RentalService {
	return &RentalService{repo: repo, invalidator: invalidator, logger: logger}
}

// CreateRental books a vehicle. New rentals start pending.
func (s *RentalService) CreateRental(ctx context.Context, req *rental.CreateRentalRequest) (*rental.Rental, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	rec := &rental.Rental{
		VehicleID:    req.VehicleID,
		CustomerName: req.CustomerName,
		StartDate:    start,
		EndDate:      end,
		IsFlexible:   req.IsFlexible,
		Status:       rental.StatusPending,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidate(ctx, rec.StartDate, rec.EndDate)
	s.logger.Info("rental created",
		zap.Int64("rental_id", rec.ID),
		zap.Int64("vehicle_id", rec.VehicleID),
	)
	return rec, nil
}

// GetRental retrieves a rental by ID
func (s *RentalService) GetRental(ctx context.Context, id int64) (*rental.Rental, error) {
	return s.repo.FindByID(ctx, id)
}

// ListRentals returns rentals matching the filters
func (s *RentalService) ListRentals(ctx context.Context, f rental.ListFilters) ([]rental.Rental, error) {
	var from, to time.Time
	if f.StartDate != "" && f.EndDate != "" {
		var err error
		from, to, err = parseRange(f.StartDate, f.EndDate)
		if err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, f, from, to)
}

// UpdateRental edits a booking. Status changes must follow the allowed
// transition graph. Cached grids overlapping the old and the new date
// range are both invalidated.
func (s *RentalService) UpdateRental(ctx context.Context, id int64, req *rental.UpdateRentalRequest) (*rental.Rental, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStart, oldEnd := rec.StartDate, rec.EndDate

	if req.CustomerName != nil {
		rec.CustomerName = *req.CustomerName
	}
	if req.StartDate != nil {
		start, err := dates.Parse(*req.StartDate)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
		}
		rec.StartDate = start
	}
	if req.EndDate != nil {
		end, err := dates.Parse(*req.EndDate)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
		}
		rec.EndDate = end
	}
	if !dates.ValidRange(rec.StartDate, rec.EndDate) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "start_date must not be after end_date")
	}
	if req.IsFlexible != nil {
		rec.IsFlexible = *req.IsFlexible
	}
	if req.Status != nil {
		if !rental.ValidStatus(*req.Status) {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown rental status")
		}
		if !rental.CanTransition(rec.Status, *req.Status) {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "invalid rental status transition")
		}
		rec.Status = *req.Status
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidate(ctx, oldStart, oldEnd)
	s.invalidate(ctx, rec.StartDate, rec.EndDate)
	return rec, nil
}

// DeleteRental cancels a booking
func (s *RentalService) DeleteRental(ctx context.Context, id int64) error {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, rec.StartDate, rec.EndDate)
	s.logger.Info("rental deleted", zap.Int64("rental_id", id))
	return nil
}

// invalidate drops cached grids overlapping the mutated range. A failed
// invalidation only risks serving a stale grid until its TTL, so the
// mutation itself still succeeds.
func (s *RentalService) invalidate(ctx context.Context, from, to time.Time) {
	if err := s.invalidator.InvalidateRange(ctx, from, to); err != nil {
		s.logger.Warn("failed to invalidate availability cache",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err),
		)
	}
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := dates.Parse(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}
	end, err := dates.Parse(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}
	if !dates.ValidRange(start, end) {
		return time.Time{}, time.Time{}, xerrors.Wrap(xerrors.ErrInvalidInput, "start_date must not be after end_date")
	}
	return start, end, nil
}
