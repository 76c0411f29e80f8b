package repositories

import (
	"context"
	"errors"
	"fmt"

	models "bantay-usok/lungsod/internal/models/gorm"

	"gorm.io/gorm"
)

// TestRepository manages emission test results and quarterly schedules
type TestRepository struct {
	db *gorm.DB
}

// NewTestRepository creates a new test repository
func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{db: db}
}

// Create stores a test result. The vehicle must exist; a dangling vehicle_id
// fails with ErrNotFound.
func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.Select("id").Where("id = ?", test.VehicleID).First(&vehicle).Error; err != nil {
			return err
		}
		return tx.Create(test).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("vehicle %s: %w", test.VehicleID, ErrNotFound)
		}
		return fmt.Errorf("create emission test: %w", err)
	}
	return nil
}

// Latest returns a vehicle's most recent test, or ErrNotFound if it was
// never tested.
func (r *TestRepository) Latest(ctx context.Context, vehicleID string) (*models.Test, error) {
	var test models.Test
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("test_date DESC, created_at DESC").
		First(&test).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no tests for vehicle %s: %w", vehicleID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch latest test: %w", err)
	}
	return &test, nil
}

// ListByVehicle returns all tests for a vehicle, newest first.
func (r *TestRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]models.Test, error) {
	var tests []models.Test
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("test_date DESC, created_at DESC").
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("fetch tests: %w", err)
	}
	return tests, nil
}

// ListByPeriod returns all tests logged for a year and quarter.
func (r *TestRepository) ListByPeriod(ctx context.Context, year, quarter int) ([]models.Test, error) {
	var tests []models.Test
	err := r.db.WithContext(ctx).
		Where("year = ? AND quarter = ?", year, quarter).
		Order("test_date DESC").
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("fetch tests by period: %w", err)
	}
	return tests, nil
}

// CreateSchedule stores a quarterly testing schedule.
func (r *TestRepository) CreateSchedule(ctx context.Context, schedule *models.TestSchedule) error {
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return fmt.Errorf("create test schedule: %w", err)
	}
	return nil
}

// SchedulesByPeriod returns the schedules planned for a year and quarter.
func (r *TestRepository) SchedulesByPeriod(ctx context.Context, year, quarter int) ([]models.TestSchedule, error) {
	var schedules []models.TestSchedule
	err := r.db.WithContext(ctx).
		Where("year = ? AND quarter = ?", year, quarter).
		Order("conducted_on ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, fmt.Errorf("fetch schedules: %w", err)
	}
	return schedules, nil
}
