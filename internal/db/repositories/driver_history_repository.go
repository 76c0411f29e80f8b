package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	models "bantay-usok/lungsod/internal/models/gorm"

	"gorm.io/gorm"
)

// DriverHistoryRepository reads the vehicle driver assignment ledger. All
// writes go through VehicleRepository so they stay paired with the vehicle
// row; this repository only ever selects.
type DriverHistoryRepository struct {
	db *gorm.DB
}

// NewDriverHistoryRepository creates a new driver history repository
func NewDriverHistoryRepository(db *gorm.DB) *DriverHistoryRepository {
	return &DriverHistoryRepository{db: db}
}

// Current returns the latest assignment row for a vehicle. The id term only
// makes a changed_at tie deterministic; ids are uuids, so unlike the serial
// ids on record_history it says nothing about insertion order.
func (r *DriverHistoryRepository) Current(ctx context.Context, vehicleID string) (*models.VehicleDriverHistory, error) {
	var entry models.VehicleDriverHistory
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("changed_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no driver history for vehicle %s: %w", vehicleID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch current driver: %w", err)
	}
	return &entry, nil
}

// AsOf returns the assignment that was in force at the given instant, or
// ErrNotFound when the vehicle had no assignment yet.
func (r *DriverHistoryRepository) AsOf(ctx context.Context, vehicleID string, at time.Time) (*models.VehicleDriverHistory, error) {
	var entry models.VehicleDriverHistory
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND changed_at <= ?", vehicleID, at).
		Order("changed_at DESC, id DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no driver assigned to vehicle %s at %s: %w", vehicleID, at.Format(time.RFC3339), ErrNotFound)
		}
		return nil, fmt.Errorf("fetch driver as of: %w", err)
	}
	return &entry, nil
}

// ListByVehicle returns the full assignment ledger for a vehicle, newest
// first.
func (r *DriverHistoryRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]models.VehicleDriverHistory, error) {
	var entries []models.VehicleDriverHistory
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("changed_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("fetch driver history: %w", err)
	}
	return entries, nil
}
