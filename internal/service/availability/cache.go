// internal/service/availability/cache.go
package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/pkg/dates"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	gridKeyPrefix = "availability:grid:"
	gridKeyIndex  = "availability:grid:keys"
)

// RemoteCalendar is the upstream precomputed-calendar endpoint. The server
// behind it is expected to have already applied the resolution rules.
type RemoteCalendar interface {
	FetchCalendar(ctx context.Context, from, to time.Time) (*domain.CalendarGrid, error)
}

// Invalidator is the direct callback contract between entity mutation
// handlers and the grid cache. Every create/update/delete of a rental or
// unavailability window must invalidate cached grids overlapping the
// mutated date range.
type Invalidator interface {
	InvalidateRange(ctx context.Context, from, to time.Time) error
}

// GridCache returns calendar grids for a window with minimum redundant
// work: Redis cache first, then the remote precomputed calendar, then a
// local recomputation from the in-memory entity snapshot. Remote failures
// are recoverable and never surface to callers.
type GridCache struct {
	rdb      *redis.Client
	remote   RemoteCalendar // nil when no upstream is configured
	builder  *Builder
	logger   *zap.Logger
	ttl      time.Duration
	localTTL time.Duration
}

func NewGridCache(rdb *redis.Client, remote RemoteCalendar, builder *Builder, logger *zap.Logger, ttl, localTTL time.Duration) *GridCache {
	return &GridCache{
		rdb:      rdb,
		remote:   remote,
		builder:  builder,
		logger:   logger,
		ttl:      ttl,
		localTTL: localTTL,
	}
}

// Resolve returns the grid for [from, to]. forceRefresh bypasses any
// cached entry. Grids built on the local fallback path resolve from the
// full snapshot, rentals and unavailability windows both, and are cached
// with a shorter TTL so a recovered upstream takes over quickly.
func (c *GridCache) Resolve(ctx context.Context, from, to time.Time, snap Snapshot, forceRefresh bool) (*domain.CalendarGrid, error) {
	key := gridKey(from, to)

	if !forceRefresh {
		if grid := c.lookup(ctx, key); grid != nil {
			grid.Source = domain.SourceCache
			return grid, nil
		}
	}

	if c.remote != nil {
		grid, err := c.remote.FetchCalendar(ctx, from, to)
		if err == nil {
			grid.Source = domain.SourceRemote
			c.store(ctx, key, grid, c.ttl)
			return grid, nil
		}
		if ctx.Err() != nil {
			// Superseded or deadline-expired request: the caller decides,
			// not the fallback.
			return nil, ctx.Err()
		}
		c.logger.Warn("remote calendar fetch failed, falling back to local computation",
			zap.String("window", key),
			zap.Error(err),
		)
	}

	grid := c.builder.Build(from, to, snap.Vehicles, snap.Rentals, snap.Windows)
	grid.Source = domain.SourceLocal
	c.store(ctx, key, grid, c.localTTL)
	return grid, nil
}

// ResolveLocal serves the authoritative calendar from the entity snapshot,
// skipping the upstream. Used by the calendar API itself, which must not
// depend on another precomputation tier.
func (c *GridCache) ResolveLocal(ctx context.Context, from, to time.Time, snap Snapshot, forceRefresh bool) (*domain.CalendarGrid, error) {
	key := gridKey(from, to)

	if !forceRefresh {
		if grid := c.lookup(ctx, key); grid != nil {
			grid.Source = domain.SourceCache
			return grid, nil
		}
	}

	grid := c.builder.Build(from, to, snap.Vehicles, snap.Rentals, snap.Windows)
	grid.Source = domain.SourceLocal
	c.store(ctx, key, grid, c.ttl)
	return grid, nil
}

// InvalidateRange drops every cached grid whose window overlaps
// [from, to]. Unparseable index entries are dropped too.
func (c *GridCache) InvalidateRange(ctx context.Context, from, to time.Time) error {
	keys, err := c.rdb.SMembers(ctx, gridKeyIndex).Result()
	if err != nil {
		return fmt.Errorf("failed to list cached grid keys: %w", err)
	}

	for _, key := range keys {
		gFrom, gTo, err := parseGridKey(key)
		if err == nil && !dates.Overlaps(gFrom, gTo, from, to) {
			continue
		}
		if err := c.rdb.Del(ctx, key).Err(); err != nil {
			c.logger.Warn("failed to delete cached grid", zap.String("key", key), zap.Error(err))
			continue
		}
		if err := c.rdb.SRem(ctx, gridKeyIndex, key).Err(); err != nil {
			c.logger.Warn("failed to unindex cached grid", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// lookup returns the cached grid or nil. Redis errors count as misses.
func (c *GridCache) lookup(ctx context.Context, key string) *domain.CalendarGrid {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("grid cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var grid domain.CalendarGrid
	if err := json.Unmarshal(raw, &grid); err != nil {
		c.logger.Warn("dropping undecodable cached grid", zap.String("key", key), zap.Error(err))
		_ = c.rdb.Del(ctx, key).Err()
		return nil
	}
	return &grid
}

// store caches a grid best-effort; a write failure only costs recomputation.
func (c *GridCache) store(ctx context.Context, key string, grid *domain.CalendarGrid, ttl time.Duration) {
	raw, err := json.Marshal(grid)
	if err != nil {
		c.logger.Warn("failed to encode grid for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warn("grid cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.SAdd(ctx, gridKeyIndex, key).Err(); err != nil {
		c.logger.Warn("grid cache index write failed", zap.String("key", key), zap.Error(err))
	}
}

func gridKey(from, to time.Time) string {
	return gridKeyPrefix + dates.Format(from) + ":" + dates.Format(to)
}

func parseGridKey(key string) (from, to time.Time, err error) {
	rest, ok := strings.CutPrefix(key, gridKeyPrefix)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("not a grid key: %s", key)
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed grid key: %s", key)
	}
	if from, err = dates.Parse(parts[0]); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = dates.Parse(parts[1]); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
