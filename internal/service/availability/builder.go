// internal/service/availability/builder.go
package availability

import (
	"sort"
	"sync"
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/domain/rental"
	"fleetrent-service/internal/domain/unavailability"
	"fleetrent-service/internal/domain/vehicle"
	"fleetrent-service/internal/pkg/dates"

	"go.uber.org/zap"
)

// Builder computes calendar grids for a window by running the resolver
// over every (day, vehicle) pair. Intervals are indexed per vehicle up
// front so each day only scans that vehicle's own records.
type Builder struct {
	logger *zap.Logger
}

func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build produces the grid for [from, to] inclusive. Per-vehicle rows are
// computed concurrently; the resolver is pure, so the result is identical
// to the sequential computation. Records with malformed dates are excluded
// from resolution and logged, never failed on.
func (b *Builder) Build(from, to time.Time, fleet []vehicle.Vehicle, rentals []rental.Rental, windows []unavailability.Window) *domain.CalendarGrid {
	days := dates.Range(from, to)

	rentalsByVehicle := b.indexRentals(rentals)
	windowsByVehicle := b.indexWindows(windows)

	rows := make([][]domain.DayStatus, len(fleet))
	var wg sync.WaitGroup
	for i, v := range fleet {
		wg.Add(1)
		go func(i int, v vehicle.Vehicle) {
			defer wg.Done()
			row := make([]domain.DayStatus, len(days))
			vr := rentalsByVehicle[v.ID]
			vw := windowsByVehicle[v.ID]
			for j, day := range days {
				row[j] = Resolve(v, day, vr, vw)
			}
			rows[i] = row
		}(i, v)
	}
	wg.Wait()

	calendar := make([]domain.CalendarDay, len(days))
	for j, day := range days {
		vehicles := make([]domain.VehicleDayStatus, len(fleet))
		for i, v := range fleet {
			vehicles[i] = domain.VehicleDayStatus{VehicleID: v.ID, DayStatus: rows[i][j]}
		}
		calendar[j] = domain.CalendarDay{Date: dates.Format(day), Vehicles: vehicles}
	}

	return &domain.CalendarGrid{
		StartDate: dates.Format(dates.Day(from)),
		EndDate:   dates.Format(dates.Day(to)),
		Calendar:  calendar,
	}
}

func (b *Builder) indexRentals(rentals []rental.Rental) map[int64][]rental.Rental {
	byVehicle := make(map[int64][]rental.Rental)
	for _, r := range rentals {
		if !dates.ValidRange(r.StartDate, r.EndDate) {
			// Data-quality problem, not a request failure. Excluding the
			// record silently would hide it, so log it.
			b.logger.Warn("skipping rental with malformed date range",
				zap.Int64("rental_id", r.ID),
				zap.Int64("vehicle_id", r.VehicleID),
			)
			continue
		}
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r)
	}
	for _, rs := range byVehicle {
		sort.Slice(rs, func(i, j int) bool { return rs[i].StartDate.Before(rs[j].StartDate) })
	}
	return byVehicle
}

func (b *Builder) indexWindows(windows []unavailability.Window) map[int64][]unavailability.Window {
	byVehicle := make(map[int64][]unavailability.Window)
	for _, w := range windows {
		if !dates.ValidRange(w.StartDate, w.EndDate) {
			b.logger.Warn("skipping unavailability window with malformed date range",
				zap.Int64("window_id", w.ID),
				zap.Int64("vehicle_id", w.VehicleID),
			)
			continue
		}
		byVehicle[w.VehicleID] = append(byVehicle[w.VehicleID], w)
	}
	for _, ws := range byVehicle {
		sort.Slice(ws, func(i, j int) bool { return ws[i].StartDate.Before(ws[j].StartDate) })
	}
	return byVehicle
}
