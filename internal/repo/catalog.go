package repo

import (
	"context"
	"fantasy-grid/internal/domain/models"
	"fmt"
	"github.com/jmoiron/sqlx"
)

type CatalogRepo struct {
	storage *sqlx.DB
}

func NewCatalogRepo(storage *sqlx.DB) *CatalogRepo {
	return &CatalogRepo{storage: storage}
}

func (r *CatalogRepo) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	const op = "repo.catalog.ListDrivers"

	query := `SELECT driver_id, driver_name, constructor_name FROM drivers ORDER BY driver_id`

	var drivers []models.Driver
	if err := r.storage.SelectContext(ctx, &drivers, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return drivers, nil
}

func (r *CatalogRepo) ListConstructors(ctx context.Context) ([]models.Constructor, error) {
	const op = "repo.catalog.ListConstructors"

	query := `SELECT constructor_id, constructor_name FROM constructors ORDER BY constructor_id`

	var constructors []models.Constructor
	if err := r.storage.SelectContext(ctx, &constructors, query); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return constructors, nil
}

func (r *CatalogRepo) DriverExists(ctx context.Context, driverID int) (bool, error) {
	const op = "repo.catalog.DriverExists"

	query := `SELECT EXISTS(SELECT 1 FROM drivers WHERE driver_id = $1)`

	var exists bool
	if err := r.storage.GetContext(ctx, &exists, query, driverID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (r *CatalogRepo) ConstructorExists(ctx context.Context, constructorID int) (bool, error) {
	const op = "repo.catalog.ConstructorExists"

	query := `SELECT EXISTS(SELECT 1 FROM constructors WHERE constructor_id = $1)`

	var exists bool
	if err := r.storage.GetContext(ctx, &exists, query, constructorID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
