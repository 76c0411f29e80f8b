package routes

import (
	"bantay-usok/lungsod/internal/api"
	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/metrics"
	"bantay-usok/lungsod/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, jwtSecret []byte, deps *api.Dependencies) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(jwtSecret)) // global: all routes must be authenticated

		// Smoke-belching enforcement
		v1.Group(func(belching chi.Router) {
			belching.Use(middleware.RequireRole(constants.RoleAirQuality))

			belching.Post("/drivers", api.CreateDriverHandler(deps))
			belching.Get("/drivers", api.SearchDriversHandler(deps))
			belching.Get("/drivers/{driverID}", api.GetDriverHandler(deps))

			belching.Post("/records", api.CreateRecordHandler(deps))
			belching.Get("/records", api.SearchRecordsHandler(deps))
			belching.Get("/records/{recordID}", api.GetRecordHandler(deps))
			belching.Get("/records/{recordID}/status", api.RecordStatusHandler(deps))
			belching.Get("/records/{recordID}/history", api.RecordHistoryHandler(deps))
			belching.Get("/records/{recordID}/summary", api.RecordSummaryHandler(deps))
			belching.Post("/records/{recordID}/violations", api.RecordViolationHandler(deps))
			belching.Post("/records/{recordID}/clearance", api.RecordClearanceHandler(deps))
			belching.Post("/violations/{violationID}/payments", api.PayViolationHandler(deps))

			belching.Get("/fees/{category}/{level}", api.FeeHistoryHandler(deps))
			belching.Get("/fees/{category}/{level}/resolve", api.ResolveFeeHandler(deps))

			// Fee configuration is admin-only
			belching.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireRole())
				admin.Post("/fees", api.CreateFeeHandler(deps))
			})
		})

		// Government emission testing
		v1.Group(func(emission chi.Router) {
			emission.Use(middleware.RequireRole(constants.RoleGovernmentEmission))

			emission.Post("/vehicles", api.RegisterVehicleHandler(deps))
			emission.Get("/vehicles", api.SearchVehiclesHandler(deps))
			emission.Get("/vehicles/{vehicleID}", api.GetVehicleHandler(deps))
			emission.Post("/vehicles/{vehicleID}/driver", api.ReassignDriverHandler(deps))
			emission.Get("/vehicles/{vehicleID}/driver", api.CurrentDriverHandler(deps))
			emission.Get("/vehicles/{vehicleID}/driver/history", api.DriverHistoryHandler(deps))
			emission.Post("/vehicles/{vehicleID}/tests", api.LogTestHandler(deps))
			emission.Get("/vehicles/{vehicleID}/tests", api.VehicleTestsHandler(deps))

			emission.Get("/tests", api.PeriodTestsHandler(deps))
			emission.Post("/test-schedules", api.CreateScheduleHandler(deps))
			emission.Get("/test-schedules", api.SchedulesHandler(deps))
		})

		// Account management is admin-only
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole())

			admin.Post("/users", api.CreateUserHandler(deps))
			admin.Get("/users/{userID}", api.GetUserHandler(deps))
			admin.Post("/users/{userID}/roles", api.AssignRoleHandler(deps))
			admin.Delete("/users/{userID}", api.DeactivateUserHandler(deps))
		})
	})
}
