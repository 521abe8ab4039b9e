package rental

// internal/domain/rental/entity.go
import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// ValidStatus reports whether s is a known rental status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusFinished:
		return true
	}
	return false
}

// Rental represents a platform booking. StartDate and EndDate are inclusive
// day bounds: a day d is covered iff start <= d <= end. Flexible rentals
// have an orientation-only end date and still block availability.
type Rental struct {
	ID           int64     `json:"id" db:"id"`
	VehicleID    int64     `json:"vehicle_id" db:"vehicle_id"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	IsFlexible   bool      `json:"is_flexible" db:"is_flexible"`
	Status       Status    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Blocks reports whether the rental participates in availability
// resolution. Finished rentals never block a day.
func (r Rental) Blocks() bool {
	return r.Status != StatusFinished
}

// AllowTransition defines the rental status flow. Finished is terminal.
var AllowTransition = map[Status][]Status{
	StatusPending:  {StatusActive, StatusFinished},
	StatusActive:   {StatusFinished},
	StatusFinished: {},
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}
