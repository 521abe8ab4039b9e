// internal/service/unavailability/unavailability.go
package unavailability

import (
	"context"
	"time"

	"fleetrent-service/internal/domain/unavailability"
	"fleetrent-service/internal/pkg/dates"
	xerrors "fleetrent-service/internal/pkg/errors"
	"fleetrent-service/internal/repository/postgres"
	availsvc "fleetrent-service/internal/service/availability"

	"go.uber.org/zap"
)

type UnavailabilityService struct {
	repo        *postgres.UnavailabilityRepository
	invalidator availsvc.Invalidator
	logger      *zap.Logger
}

func NewUnavailabilityService(repo *postgres.UnavailabilityRepository, invalidator availsvc.Invalidator, logger *zap.Logger) *UnavailabilityService {
	return &UnavailabilityService{repo: repo, invalidator: invalidator, logger: logger}
}

// CreateWindow declares a new unavailability window. A window overlapping
// an existing one of the same vehicle and type is a DUPLICATE_UNAVAILABILITY
// conflict, surfaced verbatim and never retried.
func (s *UnavailabilityService) CreateWindow(ctx context.Context, req *unavailability.CreateWindowRequest) (*unavailability.Window, error) {
	w, err := s.fromCreateRequest(req)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.repo.FindOverlapping(ctx, w.VehicleID, w.StartDate, w.EndDate, w.Type, 0)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, xerrors.ErrDuplicateUnavailability
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}

	s.invalidate(ctx, w.StartDate, w.EndDate)
	s.logger.Info("unavailability window created",
		zap.Int64("window_id", w.ID),
		zap.Int64("vehicle_id", w.VehicleID),
		zap.String("type", string(w.Type)),
	)
	return w, nil
}

// GetWindow retrieves a window by ID
func (s *UnavailabilityService) GetWindow(ctx context.Context, id int64) (*unavailability.Window, error) {
	return s.repo.FindByID(ctx, id)
}

// ListWindows returns windows for the calendar edit flow: by vehicle, with
// an optional date range.
func (s *UnavailabilityService) ListWindows(ctx context.Context, f unavailability.ListFilters) ([]unavailability.Window, error) {
	var from, to time.Time
	if f.StartDate != "" && f.EndDate != "" {
		var err error
		if from, err = dates.Parse(f.StartDate); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
		}
		if to, err = dates.Parse(f.EndDate); err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
		}
	}
	return s.repo.List(ctx, f.VehicleID, from, to)
}

// UpdateWindow edits a window. Both the old and new date ranges invalidate
// the grid cache.
func (s *UnavailabilityService) UpdateWindow(ctx context.Context, id int64, req *unavailability.UpdateWindowRequest) (*unavailability.Window, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStart, oldEnd := w.StartDate, w.EndDate

	if req.StartDate != nil {
		start, err := dates.Parse(*req.StartDate)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
		}
		w.StartDate = start
	}
	if req.EndDate != nil {
		end, err := dates.Parse(*req.EndDate)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
		}
		w.EndDate = end
	}
	if req.Type != nil {
		w.Type = *req.Type
	}
	if req.Reason != nil {
		w.Reason = *req.Reason
	}
	if req.Notes != nil {
		w.Notes = *req.Notes
	}
	if req.Priority != nil {
		w.Priority = *req.Priority
	}
	if req.Recurring != nil {
		w.Recurring = *req.Recurring
	}

	if err := w.Validate(); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}

	overlapping, err := s.repo.FindOverlapping(ctx, w.VehicleID, w.StartDate, w.EndDate, w.Type, w.ID)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, xerrors.ErrDuplicateUnavailability
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	s.invalidate(ctx, oldStart, oldEnd)
	s.invalidate(ctx, w.StartDate, w.EndDate)
	return w, nil
}

// DeleteWindow removes a window and frees its days
func (s *UnavailabilityService) DeleteWindow(ctx context.Context, id int64) error {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, w.StartDate, w.EndDate)
	s.logger.Info("unavailability window deleted", zap.Int64("window_id", id))
	return nil
}

func (s *UnavailabilityService) fromCreateRequest(req *unavailability.CreateWindowRequest) (*unavailability.Window, error) {
	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}
	end, err := dates.Parse(req.EndDate)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}

	priority := req.Priority
	if priority == 0 {
		priority = unavailability.PriorityNormal
	}

	w := &unavailability.Window{
		VehicleID: req.VehicleID,
		StartDate: start,
		EndDate:   end,
		Type:      req.Type,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Priority:  priority,
		Recurring: req.Recurring,
	}
	if err := w.Validate(); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}
	return w, nil
}

func (s *UnavailabilityService) invalidate(ctx context.Context, from, to time.Time) {
	if err := s.invalidator.InvalidateRange(ctx, from, to); err != nil {
		s.logger.Warn("failed to invalidate availability cache",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err),
		)
	}
}
