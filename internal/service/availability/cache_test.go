package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/pkg/dates"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// unreachableRedis returns a client whose every command fails fast, so
// cache reads count as misses and writes stay best-effort no-ops.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

type fakeRemote struct {
	grid *domain.CalendarGrid
	err  error
	wait chan struct{} // when set, block until closed or ctx done
}

func (f *fakeRemote) FetchCalendar(ctx context.Context, from, to time.Time) (*domain.CalendarGrid, error) {
	if f.wait != nil {
		select {
		case <-f.wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	g := *f.grid
	return &g, nil
}

func TestGridKeyRoundTrip(t *testing.T) {
	from, to := day("2026-03-01"), day("2026-03-15")
	key := gridKey(from, to)
	if key != "availability:grid:2026-03-01:2026-03-15" {
		t.Errorf("gridKey = %s", key)
	}

	gotFrom, gotTo, err := parseGridKey(key)
	if err != nil {
		t.Fatalf("parseGridKey: %v", err)
	}
	if !gotFrom.Equal(from) || !gotTo.Equal(to) {
		t.Errorf("round trip lost bounds: %s..%s", dates.Format(gotFrom), dates.Format(gotTo))
	}
}

func TestParseGridKeyRejectsMalformed(t *testing.T) {
	for _, key := range []string{
		"other:prefix:2026-03-01:2026-03-15",
		"availability:grid:2026-03-01",
		"availability:grid:2026-03-01:not-a-date",
		"availability:grid:",
	} {
		if _, _, err := parseGridKey(key); err == nil {
			t.Errorf("parseGridKey(%q): expected error", key)
		}
	}
}

func TestResolvePrefersRemote(t *testing.T) {
	remoteGrid := &domain.CalendarGrid{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-05",
		Calendar:  []domain.CalendarDay{{Date: "2026-03-01"}},
	}
	cache := NewGridCache(unreachableRedis(), &fakeRemote{grid: remoteGrid}, NewBuilder(zap.NewNop()), zap.NewNop(), time.Minute, time.Second)

	grid, err := cache.Resolve(context.Background(), day("2026-03-01"), day("2026-03-05"), Snapshot{}, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if grid.Source != domain.SourceRemote {
		t.Errorf("Source = %s, want remote", grid.Source)
	}
}

func TestResolveFallsBackToLocal(t *testing.T) {
	remote := &fakeRemote{err: errors.New("upstream down")}
	cache := NewGridCache(unreachableRedis(), remote, NewBuilder(zap.NewNop()), zap.NewNop(), time.Minute, time.Second)

	snap := Snapshot{Vehicles: testFleet()}
	grid, err := cache.Resolve(context.Background(), day("2026-03-01"), day("2026-03-03"), snap, false)
	if err != nil {
		t.Fatalf("Resolve must recover from a remote failure: %v", err)
	}
	if grid.Source != domain.SourceLocal {
		t.Errorf("Source = %s, want local", grid.Source)
	}
	if len(grid.Calendar) != 3 {
		t.Errorf("local grid has %d days, want 3", len(grid.Calendar))
	}
}

func TestResolveWithoutUpstream(t *testing.T) {
	cache := NewGridCache(unreachableRedis(), nil, NewBuilder(zap.NewNop()), zap.NewNop(), time.Minute, time.Second)

	grid, err := cache.Resolve(context.Background(), day("2026-03-01"), day("2026-03-03"), Snapshot{Vehicles: testFleet()}, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if grid.Source != domain.SourceLocal {
		t.Errorf("Source = %s, want local", grid.Source)
	}
}

func TestResolveCancelledRequestDoesNotFallBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	remote := &fakeRemote{err: errors.New("fetch aborted")}
	cache := NewGridCache(unreachableRedis(), remote, NewBuilder(zap.NewNop()), zap.NewNop(), time.Minute, time.Second)

	_, err := cache.Resolve(ctx, day("2026-03-01"), day("2026-03-03"), Snapshot{Vehicles: testFleet()}, false)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled request must surface ctx error, got %v", err)
	}
}
