package vehicle

// internal/domain/vehicle/entity.go
import "time"

type Status string
type Category string

const (
	StatusAvailable          Status = "available"
	StatusRented             Status = "rented"
	StatusMaintenance        Status = "maintenance"
	StatusTemporarilyRemoved Status = "temporarily_removed"
	StatusRemoved            Status = "removed"
	StatusStolen             Status = "stolen"
	StatusPrivate            Status = "private"
)

const (
	CategoryEconomy Category = "economy"
	CategoryCompact Category = "compact"
	CategorySedan   Category = "sedan"
	CategorySUV     Category = "suv"
	CategoryVan     Category = "van"
	CategoryPremium Category = "premium"
	CategorySport   Category = "sport"
	CategoryOther   Category = "other"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusRented, StatusMaintenance,
		StatusTemporarilyRemoved, StatusRemoved, StatusStolen, StatusPrivate:
		return true
	}
	return false
}

// Vehicle represents a fleet vehicle
type Vehicle struct {
	ID           int64     `json:"id" db:"id"`
	Brand        string    `json:"brand" db:"brand"`
	Model        string    `json:"model" db:"model"`
	LicensePlate string    `json:"license_plate" db:"license_plate"`
	Company      string    `json:"company" db:"company"`
	Category     Category  `json:"category" db:"category"`
	Status       Status    `json:"status" db:"status"`
	Tags         []string  `json:"tags" db:"tags"` // TEXT[]
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Name is the display name used by calendar consumers ("Brand Model").
func (v Vehicle) Name() string {
	return v.Brand + " " + v.Model
}

// InFleet reports whether the vehicle participates in availability
// dashboards. Removed vehicles stay in the registry but never in the grid.
func (v Vehicle) InFleet() bool {
	return v.Status != StatusRemoved && v.Status != StatusTemporarilyRemoved
}
