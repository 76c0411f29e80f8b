package services

import (
	"context"
	"fmt"
	"time"

	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/logging"
	"bantay-usok/lungsod/internal/metrics"
	"bantay-usok/lungsod/internal/models/dtos"
	models "bantay-usok/lungsod/internal/models/gorm"
)

// VehicleStore is the persistence surface for the vehicle registry.
type VehicleStore interface {
	Create(ctx context.Context, vehicle *models.Vehicle, registeredByID *string) error
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	GetByPlate(ctx context.Context, plateNumber string) (*models.Vehicle, error)
	Search(ctx context.Context, term string, limit int) ([]models.Vehicle, error)
	GetWithLatestTest(ctx context.Context, id string) (*models.Vehicle, *models.Test, error)
	ReassignDriver(ctx context.Context, vehicleID, driverName string, changedByID *string) (*models.VehicleDriverHistory, error)
}

// DriverHistoryStore reads the driver assignment ledger.
type DriverHistoryStore interface {
	Current(ctx context.Context, vehicleID string) (*models.VehicleDriverHistory, error)
	AsOf(ctx context.Context, vehicleID string, at time.Time) (*models.VehicleDriverHistory, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]models.VehicleDriverHistory, error)
}

// VehicleService manages government vehicle registrations and their driver
// assignment ledger.
type VehicleService struct {
	vehicles VehicleStore
	history  DriverHistoryStore
	metrics  *metrics.MetricsRegistry
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(vehicles VehicleStore, history DriverHistoryStore, registry *metrics.MetricsRegistry) *VehicleService {
	return &VehicleService{vehicles: vehicles, history: history, metrics: registry}
}

// RegisterVehicle adds a vehicle to the registry. The initial driver
// assignment lands in the ledger as part of the same registration.
func (s *VehicleService) RegisterVehicle(ctx context.Context, req dtos.CreateVehicleReq, registeredByID *string) (*models.Vehicle, error) {
	if req.PlateNumber == "" {
		return nil, fmt.Errorf("plate_number is required: %w", repositories.ErrValidation)
	}
	if req.DriverName == "" {
		return nil, fmt.Errorf("driver_name is required: %w", repositories.ErrValidation)
	}
	if req.OfficeName == "" {
		return nil, fmt.Errorf("office_name is required: %w", repositories.ErrValidation)
	}
	if req.Wheels < 2 {
		return nil, fmt.Errorf("wheels must be at least 2: %w", repositories.ErrValidation)
	}

	vehicle := &models.Vehicle{
		PlateNumber:   req.PlateNumber,
		DriverName:    req.DriverName,
		ContactNumber: req.ContactNumber,
		OfficeName:    req.OfficeName,
		VehicleType:   req.VehicleType,
		EngineType:    req.EngineType,
		Wheels:        req.Wheels,
	}
	if err := s.vehicles.Create(ctx, vehicle, registeredByID); err != nil {
		return nil, err
	}

	s.metrics.HistoryAppendsTotal.WithLabelValues("vehicle_driver").Inc()
	logging.Info("Vehicle registered",
		"vehicle_id", vehicle.ID, "plate_number", vehicle.PlateNumber,
		"office", vehicle.OfficeName)
	return vehicle, nil
}

// GetVehicle returns a vehicle with its latest emission test folded in.
func (s *VehicleService) GetVehicle(ctx context.Context, id string) (*dtos.VehicleResponse, error) {
	vehicle, test, err := s.vehicles.GetWithLatestTest(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dtos.VehicleResponse{
		ID:            vehicle.ID,
		PlateNumber:   vehicle.PlateNumber,
		DriverName:    vehicle.DriverName,
		ContactNumber: vehicle.ContactNumber,
		OfficeName:    vehicle.OfficeName,
		VehicleType:   vehicle.VehicleType,
		EngineType:    vehicle.EngineType,
		Wheels:        vehicle.Wheels,
	}
	if test != nil {
		resp.LatestTestDate = &test.TestDate
		resp.LatestTestResult = &test.Result
	}
	return resp, nil
}

// FindByPlate fetches a vehicle by plate number.
func (s *VehicleService) FindByPlate(ctx context.Context, plateNumber string) (*models.Vehicle, error) {
	return s.vehicles.GetByPlate(ctx, plateNumber)
}

// SearchVehicles finds vehicles by plate, driver or office fragment.
func (s *VehicleService) SearchVehicles(ctx context.Context, term string, limit int) ([]models.Vehicle, error) {
	return s.vehicles.Search(ctx, term, limit)
}

// ReassignDriver records a driver change in the ledger. Assigning the
// driver the vehicle already has is a no-op and returns the existing ledger
// row, so retries never duplicate history.
func (s *VehicleService) ReassignDriver(ctx context.Context, vehicleID string, req dtos.ReassignDriverReq, changedByID *string) (*models.VehicleDriverHistory, error) {
	if req.DriverName == "" {
		return nil, fmt.Errorf("driver_name is required: %w", repositories.ErrValidation)
	}

	current, err := s.history.Current(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if current.DriverName == req.DriverName {
		return current, nil
	}

	entry, err := s.vehicles.ReassignDriver(ctx, vehicleID, req.DriverName, changedByID)
	if err != nil {
		return nil, err
	}

	s.metrics.HistoryAppendsTotal.WithLabelValues("vehicle_driver").Inc()
	logging.Info("Vehicle driver reassigned",
		"vehicle_id", vehicleID, "driver_name", req.DriverName)
	return entry, nil
}

// CurrentDriver answers who drives a vehicle now, or who drove it at a
// point in time when asOf is set.
func (s *VehicleService) CurrentDriver(ctx context.Context, vehicleID string, asOf *time.Time) (*dtos.CurrentDriverResponse, error) {
	var (
		entry *models.VehicleDriverHistory
		err   error
	)
	if asOf != nil {
		entry, err = s.history.AsOf(ctx, vehicleID, *asOf)
	} else {
		entry, err = s.history.Current(ctx, vehicleID)
	}
	if err != nil {
		return nil, err
	}

	return &dtos.CurrentDriverResponse{
		VehicleID:  entry.VehicleID,
		DriverName: entry.DriverName,
		ChangedAt:  entry.ChangedAt,
		ChangedBy:  entry.ChangedByID,
		AsOf:       asOf,
	}, nil
}

// DriverHistory returns a vehicle's full assignment ledger, newest first.
func (s *VehicleService) DriverHistory(ctx context.Context, vehicleID string) ([]models.VehicleDriverHistory, error) {
	return s.history.ListByVehicle(ctx, vehicleID)
}
