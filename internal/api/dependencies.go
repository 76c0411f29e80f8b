package api

import (
	"errors"
	"net/http"
	"os"

	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/db"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/logging"
	"bantay-usok/lungsod/internal/metrics"
	"bantay-usok/lungsod/internal/services"
)

type Repositories struct {
	Drivers       *repositories.DriverRepository
	Records       *repositories.RecordRepository
	Violations    *repositories.ViolationRepository
	Fees          *repositories.FeeRepository
	RecordHistory *repositories.RecordHistoryRepository
	Users         *repositories.UserRepositoryGORM
	UserRoles     *repositories.UserRoleRepository
	Vehicles      *repositories.VehicleRepository
	DriverHistory *repositories.DriverHistoryRepository
	Tests         *repositories.TestRepository
}

type Services struct {
	Cache    common.CacheInterface
	Drivers  *services.DriverService
	Records  *services.RecordService
	Fees     *services.FeeService
	Vehicles *services.VehicleService
	Users    *services.UserService
	Testing  *services.TestingService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services onto the already
// initialized database handles.
func InitDependencies(registry *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Drivers:       repositories.NewDriverRepository(db.DB),
		Records:       repositories.NewRecordRepository(db.DB),
		Violations:    repositories.NewViolationRepository(db.DB),
		Fees:          repositories.NewFeeRepository(db.DB),
		RecordHistory: repositories.NewRecordHistoryRepository(db.DB),
		Users:         repositories.NewUserRepositoryGORM(db.PgDB),
		UserRoles:     repositories.NewUserRoleRepository(db.PgDB),
		Vehicles:      repositories.NewVehicleRepository(db.PgDB),
		DriverHistory: repositories.NewDriverHistoryRepository(db.PgDB),
		Tests:         repositories.NewTestRepository(db.PgDB),
	}

	// Prefer Redis when configured, fall back to the in-process cache.
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, using in-memory cache", "error", err.Error())
		} else {
			cacheSvc = redisCache
		}
	}
	if cacheSvc == nil {
		cacheSvc = common.NewCacheService(300, 600)
	}

	feeSvc := services.NewFeeService(repos.Fees, cacheSvc, registry)
	txRunner := services.SqlxTxRunner{DB: db.DB}

	svcs := &Services{
		Cache:    cacheSvc,
		Drivers:  services.NewDriverService(repos.Drivers),
		Records:  services.NewRecordService(txRunner, repos.Records, repos.Violations, repos.RecordHistory, feeSvc, registry),
		Fees:     feeSvc,
		Vehicles: services.NewVehicleService(repos.Vehicles, repos.DriverHistory, registry),
		Users:    services.NewUserService(repos.Users, repos.UserRoles),
		Testing:  services.NewTestingService(repos.Tests, registry),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  registry,
	}, nil
}

// statusForError maps service and repository errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrNoApplicableFee):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrAmbiguousFee):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
