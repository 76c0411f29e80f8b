package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bantay-usok/lungsod/internal/auth"
	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// LogTestHandler handles POST /api/v1/vehicles/{vehicleID}/tests
//
// @Summary      Log an emission test result
// @Tags         Testing
// @Accept       json
// @Produce      json
// @Param        vehicleID  path  string           true  "Vehicle ID"
// @Param        input      body  dtos.LogTestReq  true  "Test payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/vehicles/{vehicleID}/tests [post]
func LogTestHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.LogTestReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		test, err := deps.Services.Testing.LogTest(r.Context(), chi.URLParam(r, "vehicleID"), req, auth.CallerID(r.Context()))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to log test", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Test logged", test, http.StatusCreated)
	}
}

// VehicleTestsHandler handles GET /api/v1/vehicles/{vehicleID}/tests
func VehicleTestsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		tests, err := deps.Services.Testing.TestsByVehicle(r.Context(), chi.URLParam(r, "vehicleID"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch tests", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Tests fetched", tests)
	}
}

func periodParams(r *http.Request) (int, int, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, err
	}
	quarter, err := strconv.Atoi(r.URL.Query().Get("quarter"))
	if err != nil {
		return 0, 0, err
	}
	return year, quarter, nil
}

// PeriodTestsHandler handles GET /api/v1/tests?year=&quarter=
func PeriodTestsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		year, quarter, err := periodParams(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid year or quarter", http.StatusBadRequest)
			return
		}

		tests, err := deps.Services.Testing.TestsByPeriod(r.Context(), year, quarter)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch tests", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Tests fetched", tests)
	}
}

// CreateScheduleHandler handles POST /api/v1/test-schedules
func CreateScheduleHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateScheduleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		schedule, err := deps.Services.Testing.CreateSchedule(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create schedule", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Schedule created", schedule, http.StatusCreated)
	}
}

// SchedulesHandler handles GET /api/v1/test-schedules?year=&quarter=
func SchedulesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		year, quarter, err := periodParams(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid year or quarter", http.StatusBadRequest)
			return
		}

		schedules, err := deps.Services.Testing.SchedulesByPeriod(r.Context(), year, quarter)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch schedules", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Schedules fetched", schedules)
	}
}
