// internal/service/availability/service.go
package availability

import (
	"context"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/pkg/dates"
	xerrors "fleetrent-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Service serves the availability API: the authoritative calendar grid and
// the filtered per-vehicle summaries. It computes from the entity
// repositories through the grid cache; the progressive dashboard sits on
// top of it via Manager.
type Service struct {
	snapshots SnapshotSource
	cache     *GridCache
	logger    *zap.Logger
}

func NewService(snapshots SnapshotSource, cache *GridCache, logger *zap.Logger) *Service {
	return &Service{snapshots: snapshots, cache: cache, logger: logger}
}

// Calendar returns the resolved grid for [from, to] inclusive.
func (s *Service) Calendar(ctx context.Context, from, to time.Time, forceRefresh bool) (*domain.CalendarGrid, error) {
	if !dates.ValidRange(from, to) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "startDate must not be after endDate")
	}

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.cache.ResolveLocal(ctx, from, to, snap, forceRefresh)
}

// Summaries aggregates the grid for [from, to] into per-vehicle summaries
// and applies the filter chain.
func (s *Service) Summaries(ctx context.Context, from, to time.Time, filters domain.FilterSet, forceRefresh bool) ([]domain.Summary, error) {
	if !dates.ValidRange(from, to) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "dateFrom must not be after dateTo")
	}

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	grid, err := s.cache.ResolveLocal(ctx, from, to, snap, forceRefresh)
	if err != nil {
		return nil, err
	}
	return Aggregate(grid, snap.Vehicles, filters), nil
}
