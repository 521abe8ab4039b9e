// internal/repository/postgres/rental_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetrent-service/internal/domain/rental"
	xerrors "fleetrent-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RentalRepository struct {
	db *pgxpool.Pool
}

func NewRentalRepository(db *pgxpool.Pool) *RentalRepository {
	return &RentalRepository{db: db}
}

// Create records a new rental in pending status
func (r *RentalRepository) Create(ctx context.Context, rec *rental.Rental) error {
	query := `
		INSERT INTO rentals (vehicle_id, customer_name, start_date, end_date, is_flexible, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		rec.VehicleID, rec.CustomerName, rec.StartDate, rec.EndDate, rec.IsFlexible, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

// FindByID retrieves a rental by ID
func (r *RentalRepository) FindByID(ctx context.Context, id int64) (*rental.Rental, error) {
	query := `
		SELECT id, vehicle_id, customer_name, start_date, end_date, is_flexible, status,
		       created_at, updated_at
		FROM rentals
		WHERE id = $1
	`

	var rec rental.Rental
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.VehicleID, &rec.CustomerName, &rec.StartDate, &rec.EndDate,
		&rec.IsFlexible, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find rental: %w", err)
	}

	return &rec, nil
}

// List returns rentals matching the filters
func (r *RentalRepository) List(ctx context.Context, f rental.ListFilters, from, to time.Time) ([]rental.Rental, error) {
	query := `
		SELECT id, vehicle_id, customer_name, start_date, end_date, is_flexible, status,
		       created_at, updated_at
		FROM rentals
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if f.VehicleID > 0 {
		query += fmt.Sprintf(" AND vehicle_id = $%d", argPos)
		args = append(args, f.VehicleID)
		argPos++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, f.Status)
		argPos++
	}
	if !from.IsZero() && !to.IsZero() {
		// Inclusive interval overlap with the requested range
		query += fmt.Sprintf(" AND start_date <= $%d AND end_date >= $%d", argPos, argPos+1)
		args = append(args, to, from)
		argPos += 2
	}

	query += " ORDER BY start_date, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	defer rows.Close()

	return scanRentals(rows)
}

// ListUnfinished returns every rental still participating in availability
// resolution (pending and active).
func (r *RentalRepository) ListUnfinished(ctx context.Context) ([]rental.Rental, error) {
	query := `
		SELECT id, vehicle_id, customer_name, start_date, end_date, is_flexible, status,
		       created_at, updated_at
		FROM rentals
		WHERE status != $1
		ORDER BY start_date, id
	`

	rows, err := r.db.Query(ctx, query, rental.StatusFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to list unfinished rentals: %w", err)
	}
	defer rows.Close()

	return scanRentals(rows)
}

// Update persists edited rental fields
func (r *RentalRepository) Update(ctx context.Context, rec *rental.Rental) error {
	query := `
		UPDATE rentals
		SET customer_name = $1, start_date = $2, end_date = $3, is_flexible = $4,
		    status = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		rec.CustomerName, rec.StartDate, rec.EndDate, rec.IsFlexible, rec.Status, rec.ID,
	).Scan(&rec.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update rental: %w", err)
	}
	return nil
}

// Delete removes a rental
func (r *RentalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rental: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func scanRentals(rows pgx.Rows) ([]rental.Rental, error) {
	var rentals []rental.Rental
	for rows.Next() {
		var rec rental.Rental
		if err := rows.Scan(
			&rec.ID, &rec.VehicleID, &rec.CustomerName, &rec.StartDate, &rec.EndDate,
			&rec.IsFlexible, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rental: %w", err)
		}
		rentals = append(rentals, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rentals: %w", err)
	}
	return rentals, nil
}
