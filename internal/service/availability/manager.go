// internal/service/availability/manager.go
package availability

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	domain "fleetrent-service/internal/domain/availability"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ErrSuperseded is returned when a window request finished after a newer
// request had already started. The newer request's result stands; a stale
// completion never overwrites it.
var ErrSuperseded = errors.New("window request superseded by a newer request")

// DashboardView is the immutable result of one window resolution: the
// window, its grid and the filtered summaries. A new view replaces the old
// one atomically on every transition.
type DashboardView struct {
	RequestID   string               `json:"requestId"`
	Window      WindowState          `json:"window"`
	CanLoadMore bool                 `json:"canLoadMore"`
	CanLoadPast bool                 `json:"canLoadPast"`
	Filters     domain.FilterSet     `json:"filters"`
	Grid        *domain.CalendarGrid `json:"grid"`
	Summaries   []domain.Summary     `json:"summaries"`
	ResolvedAt  time.Time            `json:"resolvedAt"`
}

// Manager owns the dashboard window state machine. Every transition
// produces a new window, triggers a full grid re-resolution through the
// cache, and installs the result only if no newer request has started in
// the meantime (requests carry a generation; last request wins).
// Superseded in-flight resolutions are cancelled.
type Manager struct {
	cache  *GridCache
	source SnapshotSource
	logger *zap.Logger
	now    func() time.Time

	gen atomic.Uint64

	mu      sync.Mutex
	state   WindowState
	filters domain.FilterSet
	cancel  context.CancelFunc
	view    *DashboardView
}

func NewManager(cache *GridCache, source SnapshotSource, logger *zap.Logger) *Manager {
	m := &Manager{
		cache:  cache,
		source: source,
		logger: logger,
		now:    time.Now,
	}
	m.state = NewWindow(m.now())
	return m
}

// NewManagerAt is NewManager with an injected clock.
func NewManagerAt(cache *GridCache, source SnapshotSource, logger *zap.Logger, now func() time.Time) *Manager {
	m := &Manager{cache: cache, source: source, logger: logger, now: now}
	m.state = NewWindow(m.now())
	return m
}

// Refresh re-resolves the current window. forceRefresh bypasses the cache.
func (m *Manager) Refresh(ctx context.Context, forceRefresh bool) (*DashboardView, error) {
	return m.resolve(ctx, forceRefresh)
}

// LoadMoreDays extends the window forward one step and re-resolves the
// whole (larger) window; expansion is never an incremental delta.
func (m *Manager) LoadMoreDays(ctx context.Context) (*DashboardView, error) {
	m.mu.Lock()
	m.state = m.state.LoadMoreDays(m.now())
	m.mu.Unlock()
	return m.resolve(ctx, false)
}

// LoadPastDays extends the window backward one step and re-resolves.
func (m *Manager) LoadPastDays(ctx context.Context) (*DashboardView, error) {
	m.mu.Lock()
	m.state = m.state.LoadPastDays(m.now())
	m.mu.Unlock()
	return m.resolve(ctx, false)
}

// ApplyPreset resets the window to a quick-filter shape and re-resolves.
func (m *Manager) ApplyPreset(ctx context.Context, p Preset) (*DashboardView, error) {
	m.mu.Lock()
	next, err := m.state.ApplyPreset(p, m.now())
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.state = next
	m.mu.Unlock()
	return m.resolve(ctx, false)
}

// SetFilters replaces the summary filters (including the availableOnly
// toggle) and re-resolves. The window itself is unchanged.
func (m *Manager) SetFilters(ctx context.Context, f domain.FilterSet) (*DashboardView, error) {
	m.mu.Lock()
	m.filters = f
	m.mu.Unlock()
	return m.resolve(ctx, false)
}

// View returns the last installed view, or nil before the first resolve.
func (m *Manager) View() *DashboardView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// Window returns the current window state.
func (m *Manager) Window() WindowState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) resolve(ctx context.Context, forceRefresh bool) (*DashboardView, error) {
	gen := m.gen.Add(1)

	m.mu.Lock()
	if m.cancel != nil {
		// A newer request supersedes any in-flight one.
		m.cancel()
	}
	rctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	state := m.state
	filters := m.filters
	m.mu.Unlock()

	snap, err := m.source.Snapshot(rctx)
	if err != nil {
		if m.gen.Load() != gen {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	grid, err := m.cache.Resolve(rctx, state.DateFrom, state.DateTo, snap, forceRefresh)
	if err != nil {
		if m.gen.Load() != gen {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	view := &DashboardView{
		RequestID:   ulid.Make().String(),
		Window:      state,
		CanLoadMore: state.CanLoadMore(),
		CanLoadPast: state.CanLoadPast(),
		Filters:     filters,
		Grid:        grid,
		Summaries:   Aggregate(grid, snap.Vehicles, filters),
		ResolvedAt:  m.now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen.Load() != gen {
		return nil, ErrSuperseded
	}
	m.view = view

	m.logger.Debug("dashboard window resolved",
		zap.String("request_id", view.RequestID),
		zap.String("window", state.Key()),
		zap.String("source", string(grid.Source)),
		zap.Int("vehicles", len(snap.Vehicles)),
		zap.Int("days", len(grid.Calendar)),
	)
	return view, nil
}
