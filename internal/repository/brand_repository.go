package repository

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/car-marketplace/internal/domain"
)

// BrandFilter narrows brand listings.
type BrandFilter struct {
	Search string
	Active *bool
	Limit  int
	Offset int
}

// BrandRepository defines persistence access for the brand catalog.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) error
	Update(ctx context.Context, brand *domain.Brand) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	GetByName(ctx context.Context, name string) (*domain.Brand, error)
	List(ctx context.Context, filter BrandFilter) ([]*domain.Brand, int64, error)
	HasVehicles(ctx context.Context, id string) (bool, error)
}

type brandRepository struct {
	pool *pgxpool.Pool
}

// NewBrandRepository returns a Postgres-backed implementation.
func NewBrandRepository(pool *pgxpool.Pool) BrandRepository {
	return &brandRepository{pool: pool}
}

const brandColumns = `id, name, description, active, created_at, updated_at`

func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	const query = `
        INSERT INTO brands (name, description, active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		brand.Name,
		brand.Description,
		brand.Active,
	).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt)
}

func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	const query = `
        UPDATE brands SET name=$1, description=$2, active=$3, updated_at=NOW()
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		brand.Name,
		brand.Description,
		brand.Active,
		brand.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *brandRepository) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	return r.getOne(ctx, `SELECT `+brandColumns+` FROM brands WHERE id=$1`, id)
}

func (r *brandRepository) GetByName(ctx context.Context, name string) (*domain.Brand, error) {
	return r.getOne(ctx, `SELECT `+brandColumns+` FROM brands WHERE name=$1`, name)
}

func (r *brandRepository) getOne(ctx context.Context, query string, arg any) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&brand.ID,
		&brand.Name,
		&brand.Description,
		&brand.Active,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) List(ctx context.Context, filter BrandFilter) ([]*domain.Brand, int64, error) {
	where := ""
	args := []any{}

	appendClause := func(clause string) {
		if where == "" {
			where = " WHERE " + clause
			return
		}
		where += " AND " + clause
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		appendClause("name ILIKE $" + strconv.Itoa(len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		appendClause("active = $" + strconv.Itoa(len(args)))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM brands`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + brandColumns + ` FROM brands` + where +
		` ORDER BY name ASC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	brands := make([]*domain.Brand, 0)
	for rows.Next() {
		var brand domain.Brand
		if err := rows.Scan(
			&brand.ID,
			&brand.Name,
			&brand.Description,
			&brand.Active,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		brands = append(brands, &brand)
	}
	return brands, total, rows.Err()
}

func (r *brandRepository) HasVehicles(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM vehicles WHERE brand_id=$1)`, id).Scan(&exists)
	return exists, err
}
