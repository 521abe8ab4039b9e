// internal/service/availability/resolver.go
package availability

import (
	"time"

	domain "fleetrent-service/internal/domain/availability"
	"fleetrent-service/internal/domain/rental"
	"fleetrent-service/internal/domain/unavailability"
	"fleetrent-service/internal/domain/vehicle"
	"fleetrent-service/internal/pkg/dates"
)

// Resolve merges the rentals and unavailability windows touching one
// vehicle on one day into a single authoritative status.
//
// Precedence, highest first:
//  1. private_rental unavailability window
//  2. non-finished rental (flexible when the end date is orientation only)
//  3. remaining unavailability windows, most critical priority first,
//     ties broken by lowest ID
//  4. vehicle lifecycle status maintenance
//  5. available
//
// Resolve is a pure function: no side effects, and the result does not
// depend on input ordering beyond the documented tie-break. Intervals with
// malformed dates cover nothing and are skipped.
func Resolve(v vehicle.Vehicle, day time.Time, rentals []rental.Rental, windows []unavailability.Window) domain.DayStatus {
	if w, ok := pickWindow(windows, day, true); ok {
		return domain.DayStatus{
			Status:             domain.StatusUnavailable,
			UnavailabilityType: w.Type,
			Reason:             w.Reason,
		}
	}

	if r, ok := pickRental(rentals, day); ok {
		status := domain.StatusRented
		if r.IsFlexible {
			status = domain.StatusFlexible
		}
		return domain.DayStatus{
			Status:       status,
			RentalID:     r.ID,
			CustomerName: r.CustomerName,
		}
	}

	if w, ok := pickWindow(windows, day, false); ok {
		return domain.DayStatus{
			Status:             domain.StatusUnavailable,
			UnavailabilityType: w.Type,
			Reason:             w.Reason,
		}
	}

	if v.Status == vehicle.StatusMaintenance {
		return domain.DayStatus{Status: domain.StatusMaintenance}
	}

	return domain.DayStatus{Status: domain.StatusAvailable}
}

// pickWindow selects the winning window covering day. With privateOnly it
// considers only private_rental windows; otherwise it considers everything
// but private_rental (already handled at higher precedence). The winner is
// the lowest priority number, then the lowest ID.
func pickWindow(windows []unavailability.Window, day time.Time, privateOnly bool) (unavailability.Window, bool) {
	var best unavailability.Window
	found := false
	for _, w := range windows {
		if (w.Type == unavailability.TypePrivateRental) != privateOnly {
			continue
		}
		if !dates.Covers(w.StartDate, w.EndDate, day) {
			continue
		}
		if !found || w.Priority < best.Priority || (w.Priority == best.Priority && w.ID < best.ID) {
			best = w
			found = true
		}
	}
	return best, found
}

// pickRental selects the covering non-finished rental with the lowest ID.
func pickRental(rentals []rental.Rental, day time.Time) (rental.Rental, bool) {
	var best rental.Rental
	found := false
	for _, r := range rentals {
		if !r.Blocks() {
			continue
		}
		if !dates.Covers(r.StartDate, r.EndDate, day) {
			continue
		}
		if !found || r.ID < best.ID {
			best = r
			found = true
		}
	}
	return best, found
}
