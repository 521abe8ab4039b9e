package unavailability

// internal/domain/unavailability/entity.go
import (
	"fmt"
	"time"

	"fleetrent-service/internal/pkg/dates"
)

type Type string

const (
	TypeMaintenance   Type = "maintenance"
	TypeService       Type = "service"
	TypeRepair        Type = "repair"
	TypeBlocked       Type = "blocked"
	TypeCleaning      Type = "cleaning"
	TypeInspection    Type = "inspection"
	TypePrivateRental Type = "private_rental"
)

// Priority ordering: a lower number is more critical and wins when several
// windows overlap the same day.
const (
	PriorityCritical = 1
	PriorityNormal   = 2
	PriorityLow      = 3
)

// ValidType reports whether t is a known unavailability type.
func ValidType(t Type) bool {
	switch t {
	case TypeMaintenance, TypeService, TypeRepair, TypeBlocked,
		TypeCleaning, TypeInspection, TypePrivateRental:
		return true
	}
	return false
}

// Window is an operator-declared date range during which a vehicle cannot
// be rented through the platform. Bounds are inclusive days.
type Window struct {
	ID        int64     `json:"id" db:"id"`
	VehicleID int64     `json:"vehicle_id" db:"vehicle_id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	Type      Type      `json:"type" db:"type"`
	Reason    string    `json:"reason" db:"reason"`
	Notes     string    `json:"notes" db:"notes"`
	Priority  int       `json:"priority" db:"priority"`
	// Recurring is persisted and round-tripped but never expanded into
	// extra calendar instances by the resolution engine.
	Recurring bool      `json:"recurring" db:"recurring"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Validate rejects malformed windows at the API boundary. Records that
// slipped into the dataset anyway are skipped (not failed) during
// resolution; see dates.Covers.
func (w Window) Validate() error {
	if w.VehicleID <= 0 {
		return fmt.Errorf("vehicle_id is required")
	}
	if !dates.ValidRange(w.StartDate, w.EndDate) {
		return fmt.Errorf("start_date/end_date must form a valid inclusive range")
	}
	if !ValidType(w.Type) {
		return fmt.Errorf("unknown unavailability type %q", w.Type)
	}
	if w.Priority < PriorityCritical || w.Priority > PriorityLow {
		return fmt.Errorf("priority must be between %d and %d", PriorityCritical, PriorityLow)
	}
	return nil
}
