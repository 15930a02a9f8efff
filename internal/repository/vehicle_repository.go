package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/car-marketplace/internal/domain"
)

// VehicleFilter describes listing search parameters. Nil fields are skipped.
type VehicleFilter struct {
	Search       string
	Type         *domain.VehicleType
	Color        *domain.VehicleColor
	FuelType     *domain.FuelType
	Transmission *domain.TransmissionType
	Condition    *domain.VehicleCondition
	Status       *domain.VehicleStatus
	BrandID      *string
	OwnerID      *string
	MinYear      *int
	MaxYear      *int
	MinPrice     *float64
	MaxPrice     *float64
	Limit        int
	Offset       int
}

// VehicleRepository defines persistence access for listings.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]*domain.Vehicle, int64, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository returns a Postgres-backed implementation.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

const vehicleColumns = `id, vehicle_type, model, factory_year, model_year, color, fuel_type,
        transmission, condition, status, mileage, plate, price, description,
        brand_id, owner_id, created_at, updated_at`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (vehicle_type, model, factory_year, model_year, color, fuel_type,
            transmission, condition, status, mileage, plate, price, description, brand_id, owner_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		vehicle.Type,
		vehicle.Model,
		vehicle.FactoryYear,
		vehicle.ModelYear,
		vehicle.Color,
		vehicle.FuelType,
		vehicle.Transmission,
		vehicle.Condition,
		vehicle.Status,
		vehicle.Mileage,
		vehicle.Plate,
		vehicle.Price,
		vehicle.Description,
		vehicle.BrandID,
		vehicle.OwnerID,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        UPDATE vehicles
        SET vehicle_type=$1, model=$2, factory_year=$3, model_year=$4, color=$5, fuel_type=$6,
            transmission=$7, condition=$8, status=$9, mileage=$10, plate=$11, price=$12,
            description=$13, brand_id=$14, owner_id=$15, updated_at=NOW()
        WHERE id=$16`

	cmd, err := r.pool.Exec(ctx, query,
		vehicle.Type,
		vehicle.Model,
		vehicle.FactoryYear,
		vehicle.ModelYear,
		vehicle.Color,
		vehicle.FuelType,
		vehicle.Transmission,
		vehicle.Condition,
		vehicle.Status,
		vehicle.Mileage,
		vehicle.Plate,
		vehicle.Price,
		vehicle.Description,
		vehicle.BrandID,
		vehicle.OwnerID,
		vehicle.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id)
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE plate=$1`, plate)
}

func (r *vehicleRepository) getOne(ctx context.Context, query string, arg any) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, arg).Scan(scanTargets(&vehicle)...); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func scanTargets(v *domain.Vehicle) []any {
	return []any{
		&v.ID,
		&v.Type,
		&v.Model,
		&v.FactoryYear,
		&v.ModelYear,
		&v.Color,
		&v.FuelType,
		&v.Transmission,
		&v.Condition,
		&v.Status,
		&v.Mileage,
		&v.Plate,
		&v.Price,
		&v.Description,
		&v.BrandID,
		&v.OwnerID,
		&v.CreatedAt,
		&v.UpdatedAt,
	}
}

func (r *vehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]*domain.Vehicle, int64, error) {
	where := ""
	args := []any{}

	appendClause := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
			return
		}
		where += " AND " + clause
	}
	appendEq := func(column string, value any) {
		args = append(args, value)
		appendClause(column + " = $" + strconv.Itoa(len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		appendClause("(model ILIKE $" + n + " OR color ILIKE $" + n + " OR plate ILIKE $" + n + ")")
	}
	if filter.Type != nil {
		appendEq("vehicle_type", *filter.Type)
	}
	if filter.Color != nil {
		appendEq("color", *filter.Color)
	}
	if filter.FuelType != nil {
		appendEq("fuel_type", *filter.FuelType)
	}
	if filter.Transmission != nil {
		appendEq("transmission", *filter.Transmission)
	}
	if filter.Condition != nil {
		appendEq("condition", *filter.Condition)
	}
	if filter.Status != nil {
		appendEq("status", *filter.Status)
	}
	if filter.BrandID != nil {
		appendEq("brand_id", *filter.BrandID)
	}
	if filter.OwnerID != nil {
		appendEq("owner_id", *filter.OwnerID)
	}
	if filter.MinYear != nil {
		args = append(args, *filter.MinYear)
		appendClause("model_year >= $" + strconv.Itoa(len(args)))
	}
	if filter.MaxYear != nil {
		args = append(args, *filter.MaxYear)
		appendClause("model_year <= $" + strconv.Itoa(len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		appendClause("price >= $" + strconv.Itoa(len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		appendClause("price <= $" + strconv.Itoa(len(args)))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + vehicleColumns + ` FROM vehicles` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(scanTargets(&vehicle)...); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, &vehicle)
	}
	return vehicles, total, rows.Err()
}
