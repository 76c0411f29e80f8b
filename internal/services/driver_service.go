package services

import (
	"context"
	"fmt"

	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/logging"
	"bantay-usok/lungsod/internal/models/dtos"
	"bantay-usok/lungsod/internal/models/entities"
)

// DriverStore is the persistence surface for apprehended drivers.
type DriverStore interface {
	InsertDriver(ctx context.Context, driver *entities.Driver) error
	FindByID(ctx context.Context, id string) (*entities.Driver, error)
	FindByLicense(ctx context.Context, licenseNumber string) (*entities.Driver, error)
	SearchByName(ctx context.Context, term string, limit int) ([]entities.Driver, error)
}

// DriverService manages the registry of drivers named in violations.
type DriverService struct {
	drivers DriverStore
}

// NewDriverService creates a new driver service
func NewDriverService(drivers DriverStore) *DriverService {
	return &DriverService{drivers: drivers}
}

// CreateDriver registers a driver. License numbers are unique across the
// registry.
func (s *DriverService) CreateDriver(ctx context.Context, req dtos.CreateDriverReq) (*entities.Driver, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("first_name and last_name are required: %w", repositories.ErrValidation)
	}
	if req.LicenseNumber == "" {
		return nil, fmt.Errorf("license_number is required: %w", repositories.ErrValidation)
	}

	driver := &entities.Driver{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Address:       req.Address,
		LicenseNumber: req.LicenseNumber,
	}
	if err := s.drivers.InsertDriver(ctx, driver); err != nil {
		return nil, err
	}

	logging.Info("Driver registered", "driver_id", driver.ID, "license_number", driver.LicenseNumber)
	return driver, nil
}

// GetDriver fetches a driver by id.
func (s *DriverService) GetDriver(ctx context.Context, id string) (*entities.Driver, error) {
	return s.drivers.FindByID(ctx, id)
}

// FindByLicense fetches a driver by license number.
func (s *DriverService) FindByLicense(ctx context.Context, licenseNumber string) (*entities.Driver, error) {
	return s.drivers.FindByLicense(ctx, licenseNumber)
}

// SearchDrivers finds drivers by a name fragment.
func (s *DriverService) SearchDrivers(ctx context.Context, term string, limit int) ([]entities.Driver, error) {
	return s.drivers.SearchByName(ctx, term, limit)
}
