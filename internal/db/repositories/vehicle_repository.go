package repositories

import (
	"context"
	"errors"
	"fmt"

	models "bantay-usok/lungsod/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VehicleRepository manages the vehicle registry and its driver assignment
// ledger with GORM.
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// lockForUpdate applies SELECT ... FOR UPDATE where the dialect supports it.
// The sqlite driver used in tests does not, and serializes writes anyway.
func (r *VehicleRepository) lockForUpdate(tx *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create registers a vehicle and writes the initial driver assignment row in
// the same transaction, so the ledger is never empty for a vehicle that
// exists. A duplicate plate number fails with ErrConflict.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle, registeredByID *string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vehicle).Error; err != nil {
			return err
		}
		initial := models.VehicleDriverHistory{
			VehicleID:   vehicle.ID,
			DriverName:  vehicle.DriverName,
			ChangedByID: registeredByID,
		}
		return tx.Create(&initial).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("plate number %s already registered: %w", vehicle.PlateNumber, ErrConflict)
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// GetByID fetches a vehicle by id.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch vehicle: %w", err)
	}
	return &vehicle, nil
}

// GetByPlate fetches a vehicle by its plate number.
func (r *VehicleRepository) GetByPlate(ctx context.Context, plateNumber string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("plate_number = ?", plateNumber).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plate number %s: %w", plateNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch vehicle: %w", err)
	}
	return &vehicle, nil
}

// Search returns vehicles whose plate number, driver name or office name
// matches the term, newest first.
func (r *VehicleRepository) Search(ctx context.Context, term string, limit int) ([]models.Vehicle, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + term + "%"

	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("plate_number LIKE ? OR driver_name LIKE ? OR office_name LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}
	return vehicles, nil
}

// GetWithLatestTest loads a vehicle together with its most recent emission
// test. The test is nil when the vehicle has never been tested.
func (r *VehicleRepository) GetWithLatestTest(ctx context.Context, id string) (*models.Vehicle, *models.Test, error) {
	vehicle, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var test models.Test
	err = r.db.WithContext(ctx).
		Where("vehicle_id = ?", id).
		Order("test_date DESC, created_at DESC").
		First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return vehicle, nil, nil
		}
		return nil, nil, fmt.Errorf("fetch latest test: %w", err)
	}
	return vehicle, &test, nil
}

// ReassignDriver records a driver change as a new ledger row and updates the
// denormalized driver_name on the vehicle, both under a row lock so
// concurrent reassignments of the same vehicle serialize cleanly.
func (r *VehicleRepository) ReassignDriver(ctx context.Context, vehicleID, driverName string, changedByID *string) (*models.VehicleDriverHistory, error) {
	var entry models.VehicleDriverHistory

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := r.lockForUpdate(tx).Where("id = ?", vehicleID).First(&vehicle).Error; err != nil {
			return err
		}

		entry = models.VehicleDriverHistory{
			VehicleID:   vehicleID,
			DriverName:  driverName,
			ChangedByID: changedByID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&vehicle).Update("driver_name", driverName).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vehicle %s: %w", vehicleID, ErrNotFound)
		}
		return nil, fmt.Errorf("reassign driver: %w", err)
	}
	return &entry, nil
}
