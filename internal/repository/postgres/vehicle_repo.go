// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleetrent-service/internal/domain/vehicle"
	xerrors "fleetrent-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create registers a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (brand, model, license_plate, company, category, status, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.Brand, v.Model, v.LicensePlate, v.Company, v.Category, v.Status, pq.Array(v.Tags),
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return xerrors.ErrConflict
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// FindByID retrieves a vehicle by ID
func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := `
		SELECT id, brand, model, license_plate, company, category, status, tags,
		       created_at, updated_at
		FROM vehicles
		WHERE id = $1 AND deleted_at IS NULL
	`

	var v vehicle.Vehicle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Brand, &v.Model, &v.LicensePlate, &v.Company, &v.Category,
		&v.Status, pq.Array(&v.Tags), &v.CreatedAt, &v.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}

	return &v, nil
}

// ListAll returns the whole registry (soft-deleted rows excluded)
func (r *VehicleRepository) ListAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	query := `
		SELECT id, brand, model, license_plate, company, category, status, tags,
		       created_at, updated_at
		FROM vehicles
		WHERE deleted_at IS NULL
		ORDER BY brand, model, license_plate
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicles(rows)
}

// List returns vehicles matching the filters
func (r *VehicleRepository) List(ctx context.Context, f vehicle.ListFilters) ([]vehicle.Vehicle, error) {
	query := `
		SELECT id, brand, model, license_plate, company, category, status, tags,
		       created_at, updated_at
		FROM vehicles
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	argPos := 1

	if f.Company != "" {
		query += fmt.Sprintf(" AND company = $%d", argPos)
		args = append(args, f.Company)
		argPos++
	}
	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, f.Category)
		argPos++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, f.Status)
		argPos++
	}
	if f.Search != "" {
		query += fmt.Sprintf(" AND (license_plate ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d)", argPos, argPos, argPos)
		args = append(args, "%"+f.Search+"%")
		argPos++
	}

	query += " ORDER BY brand, model, license_plate"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	return scanVehicles(rows)
}

// Update applies partial updates to a vehicle
func (r *VehicleRepository) Update(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Brand != nil {
		addSet("brand", *req.Brand)
	}
	if req.Model != nil {
		addSet("model", *req.Model)
	}
	if req.LicensePlate != nil {
		addSet("license_plate", *req.LicensePlate)
	}
	if req.Company != nil {
		addSet("company", *req.Company)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}
	if req.Tags != nil {
		addSet("tags", pq.Array(req.Tags))
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	query := fmt.Sprintf(`
		UPDATE vehicles SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING id, brand, model, license_plate, company, category, status, tags,
		          created_at, updated_at
	`, strings.Join(sets, ", "), argPos)
	args = append(args, id)

	var v vehicle.Vehicle
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.Brand, &v.Model, &v.LicensePlate, &v.Company, &v.Category,
		&v.Status, pq.Array(&v.Tags), &v.CreatedAt, &v.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return &v, nil
}

// Delete soft-deletes a vehicle
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE vehicles SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func scanVehicles(rows pgx.Rows) ([]vehicle.Vehicle, error) {
	var vehicles []vehicle.Vehicle
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Brand, &v.Model, &v.LicensePlate, &v.Company, &v.Category,
			&v.Status, pq.Array(&v.Tags), &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vehicles: %w", err)
	}
	return vehicles, nil
}
