// internal/repository/postgres/unavailability_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetrent-service/internal/domain/unavailability"
	xerrors "fleetrent-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UnavailabilityRepository struct {
	db *pgxpool.Pool
}

func NewUnavailabilityRepository(db *pgxpool.Pool) *UnavailabilityRepository {
	return &UnavailabilityRepository{db: db}
}

// Create stores a new unavailability window
func (r *UnavailabilityRepository) Create(ctx context.Context, w *unavailability.Window) error {
	query := `
		INSERT INTO vehicle_unavailability
			(vehicle_id, start_date, end_date, type, reason, notes, priority, recurring)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		w.VehicleID, w.StartDate, w.EndDate, w.Type, w.Reason, w.Notes, w.Priority, w.Recurring,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create unavailability window: %w", err)
	}
	return nil
}

// FindByID retrieves a window by ID
func (r *UnavailabilityRepository) FindByID(ctx context.Context, id int64) (*unavailability.Window, error) {
	query := `
		SELECT id, vehicle_id, start_date, end_date, type, reason, notes, priority, recurring,
		       created_at, updated_at
		FROM vehicle_unavailability
		WHERE id = $1
	`

	var w unavailability.Window
	err := r.db.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.VehicleID, &w.StartDate, &w.EndDate, &w.Type, &w.Reason,
		&w.Notes, &w.Priority, &w.Recurring, &w.CreatedAt, &w.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find unavailability window: %w", err)
	}

	return &w, nil
}

// List returns windows matching the filters, used by the calendar edit flow
func (r *UnavailabilityRepository) List(ctx context.Context, vehicleID int64, from, to time.Time) ([]unavailability.Window, error) {
	query := `
		SELECT id, vehicle_id, start_date, end_date, type, reason, notes, priority, recurring,
		       created_at, updated_at
		FROM vehicle_unavailability
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if vehicleID > 0 {
		query += fmt.Sprintf(" AND vehicle_id = $%d", argPos)
		args = append(args, vehicleID)
		argPos++
	}
	if !from.IsZero() && !to.IsZero() {
		query += fmt.Sprintf(" AND start_date <= $%d AND end_date >= $%d", argPos, argPos+1)
		args = append(args, to, from)
		argPos += 2
	}

	query += " ORDER BY start_date, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unavailability windows: %w", err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// ListAll returns every window
func (r *UnavailabilityRepository) ListAll(ctx context.Context) ([]unavailability.Window, error) {
	return r.List(ctx, 0, time.Time{}, time.Time{})
}

// FindOverlapping returns windows of the same vehicle and type overlapping
// [from, to], excluding excludeID (0 to exclude nothing). Used for
// duplicate detection on create/update.
func (r *UnavailabilityRepository) FindOverlapping(ctx context.Context, vehicleID int64, from, to time.Time, typ unavailability.Type, excludeID int64) ([]unavailability.Window, error) {
	query := `
		SELECT id, vehicle_id, start_date, end_date, type, reason, notes, priority, recurring,
		       created_at, updated_at
		FROM vehicle_unavailability
		WHERE vehicle_id = $1 AND type = $2
		  AND start_date <= $3 AND end_date >= $4
		  AND id != $5
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, vehicleID, typ, to, from, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping windows: %w", err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// Update persists edited window fields
func (r *UnavailabilityRepository) Update(ctx context.Context, w *unavailability.Window) error {
	query := `
		UPDATE vehicle_unavailability
		SET start_date = $1, end_date = $2, type = $3, reason = $4, notes = $5,
		    priority = $6, recurring = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		w.StartDate, w.EndDate, w.Type, w.Reason, w.Notes, w.Priority, w.Recurring, w.ID,
	).Scan(&w.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update unavailability window: %w", err)
	}
	return nil
}

// Delete removes a window
func (r *UnavailabilityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicle_unavailability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unavailability window: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func scanWindows(rows pgx.Rows) ([]unavailability.Window, error) {
	var windows []unavailability.Window
	for rows.Next() {
		var w unavailability.Window
		if err := rows.Scan(
			&w.ID, &w.VehicleID, &w.StartDate, &w.EndDate, &w.Type, &w.Reason,
			&w.Notes, &w.Priority, &w.Recurring, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan unavailability window: %w", err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unavailability windows: %w", err)
	}
	return windows, nil
}
