package services

import (
	"context"
	"fmt"

	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/logging"
	"bantay-usok/lungsod/internal/metrics"
	"bantay-usok/lungsod/internal/models/dtos"
	models "bantay-usok/lungsod/internal/models/gorm"
)

// TestStore is the persistence surface for emission tests and schedules.
type TestStore interface {
	Create(ctx context.Context, test *models.Test) error
	Latest(ctx context.Context, vehicleID string) (*models.Test, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]models.Test, error)
	ListByPeriod(ctx context.Context, year, quarter int) ([]models.Test, error)
	CreateSchedule(ctx context.Context, schedule *models.TestSchedule) error
	SchedulesByPeriod(ctx context.Context, year, quarter int) ([]models.TestSchedule, error)
}

// TestingService records quarterly smoke-emission test results and the
// schedules that drive them.
type TestingService struct {
	tests   TestStore
	metrics *metrics.MetricsRegistry
}

// NewTestingService creates a new testing service
func NewTestingService(tests TestStore, registry *metrics.MetricsRegistry) *TestingService {
	return &TestingService{tests: tests, metrics: registry}
}

func validatePeriod(year, quarter int) error {
	if quarter < 1 || quarter > 4 {
		return fmt.Errorf("quarter must be between 1 and 4: %w", repositories.ErrValidation)
	}
	if year < 2000 {
		return fmt.Errorf("year %d is out of range: %w", year, repositories.ErrValidation)
	}
	return nil
}

// LogTest records one test execution for a vehicle.
func (s *TestingService) LogTest(ctx context.Context, vehicleID string, req dtos.LogTestReq, createdByID *string) (*models.Test, error) {
	if err := validatePeriod(req.Year, req.Quarter); err != nil {
		return nil, err
	}
	testDate, err := common.ParseDateOnly(req.TestDate)
	if err != nil {
		return nil, fmt.Errorf("invalid test_date: %w", repositories.ErrValidation)
	}

	test := &models.Test{
		VehicleID:   vehicleID,
		TestDate:    testDate,
		Quarter:     req.Quarter,
		Year:        req.Year,
		Result:      req.Result,
		CreatedByID: createdByID,
	}
	if err := s.tests.Create(ctx, test); err != nil {
		return nil, err
	}

	outcome := "fail"
	if test.Result {
		outcome = "pass"
	}
	s.metrics.EmissionTestsTotal.WithLabelValues(outcome).Inc()
	logging.Info("Emission test logged",
		"vehicle_id", vehicleID, "year", req.Year, "quarter", req.Quarter,
		"result", outcome)
	return test, nil
}

// LatestTest returns a vehicle's most recent test.
func (s *TestingService) LatestTest(ctx context.Context, vehicleID string) (*models.Test, error) {
	return s.tests.Latest(ctx, vehicleID)
}

// TestsByVehicle returns all of a vehicle's tests, newest first.
func (s *TestingService) TestsByVehicle(ctx context.Context, vehicleID string) ([]models.Test, error) {
	return s.tests.ListByVehicle(ctx, vehicleID)
}

// TestsByPeriod returns every test logged for a year and quarter.
func (s *TestingService) TestsByPeriod(ctx context.Context, year, quarter int) ([]models.Test, error) {
	if err := validatePeriod(year, quarter); err != nil {
		return nil, err
	}
	return s.tests.ListByPeriod(ctx, year, quarter)
}

// CreateSchedule plans a testing drive for a year and quarter.
func (s *TestingService) CreateSchedule(ctx context.Context, req dtos.CreateScheduleReq) (*models.TestSchedule, error) {
	if err := validatePeriod(req.Year, req.Quarter); err != nil {
		return nil, err
	}
	if req.AssignedPersonnel == "" {
		return nil, fmt.Errorf("assigned_personnel is required: %w", repositories.ErrValidation)
	}
	if req.Location == "" {
		return nil, fmt.Errorf("location is required: %w", repositories.ErrValidation)
	}
	conductedOn, err := common.ParseDateOnly(req.ConductedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid conducted_on: %w", repositories.ErrValidation)
	}

	schedule := &models.TestSchedule{
		Year:              req.Year,
		Quarter:           req.Quarter,
		AssignedPersonnel: req.AssignedPersonnel,
		Location:          req.Location,
		ConductedOn:       conductedOn,
	}
	if err := s.tests.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	logging.Info("Test schedule created",
		"year", req.Year, "quarter", req.Quarter, "location", req.Location)
	return schedule, nil
}

// SchedulesByPeriod returns the schedules for a year and quarter.
func (s *TestingService) SchedulesByPeriod(ctx context.Context, year, quarter int) ([]models.TestSchedule, error) {
	if err := validatePeriod(year, quarter); err != nil {
		return nil, err
	}
	return s.tests.SchedulesByPeriod(ctx, year, quarter)
}
