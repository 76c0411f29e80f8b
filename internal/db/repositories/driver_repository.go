package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/models/entities"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type DriverRepository struct {
	db *sqlx.DB
}

func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db}
}

// InsertDriver creates a driver. License numbers are unique; a duplicate
// returns ErrConflict.
func (r *DriverRepository) InsertDriver(ctx context.Context, driver *entities.Driver) error {
	err := r.db.QueryRowxContext(ctx, constants.InsertDriver,
		driver.FirstName,
		driver.MiddleName,
		driver.LastName,
		driver.Address,
		driver.LicenseNumber,
	).Scan(&driver.ID, &driver.CreatedAt, &driver.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("driver license %s: %w", driver.LicenseNumber, ErrConflict)
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) FindByID(ctx context.Context, id string) (*entities.Driver, error) {
	var driver entities.Driver
	err := r.db.QueryRowxContext(ctx, constants.GetDriverById, id).StructScan(&driver)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("driver %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("find driver: %w", err)
	}
	return &driver, nil
}

func (r *DriverRepository) FindByLicense(ctx context.Context, licenseNumber string) (*entities.Driver, error) {
	var driver entities.Driver
	err := r.db.QueryRowxContext(ctx, constants.GetDriverByLicense, licenseNumber).StructScan(&driver)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("driver license %s: %w", licenseNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("find driver by license: %w", err)
	}
	return &driver, nil
}

func (r *DriverRepository) SearchByName(ctx context.Context, term string, limit int) ([]entities.Driver, error) {
	drivers := []entities.Driver{}
	if err := r.db.SelectContext(ctx, &drivers, constants.SearchDriversByName, term, limit); err != nil {
		return nil, fmt.Errorf("search drivers: %w", err)
	}
	return drivers, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign_key_violation (23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
