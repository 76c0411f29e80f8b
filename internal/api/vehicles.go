package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bantay-usok/lungsod/internal/auth"
	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// RegisterVehicleHandler handles POST /api/v1/vehicles
//
// @Summary      Register a government vehicle
// @Tags         Vehicles
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateVehicleReq  true  "Vehicle payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/v1/vehicles [post]
func RegisterVehicleHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.CreateVehicleReq

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		vehicle, err := deps.Services.Vehicles.RegisterVehicle(r.Context(), req, auth.CallerID(r.Context()))
		if err != nil {
			msg := "Failed to register vehicle"
			if statusForError(err) == http.StatusConflict {
				msg = constants.MsgVehicleExists
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Vehicle registered", vehicle, http.StatusCreated)
	}
}

// GetVehicleHandler handles GET /api/v1/vehicles/{vehicleID}
func GetVehicleHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		vehicle, err := deps.Services.Vehicles.GetVehicle(r.Context(), chi.URLParam(r, "vehicleID"))
		if err != nil {
			msg := "Failed to fetch vehicle"
			if statusForError(err) == http.StatusNotFound {
				msg = constants.MsgVehicleNotFound
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Vehicle fetched", vehicle)
	}
}

// SearchVehiclesHandler handles GET /api/v1/vehicles?q= or ?plate=
func SearchVehiclesHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if plate := r.URL.Query().Get("plate"); plate != "" {
			vehicle, err := deps.Services.Vehicles.FindByPlate(r.Context(), plate)
			if err != nil {
				common.RespondError(w, initTime, err, "Failed to fetch vehicle", statusForError(err))
				return
			}
			common.RespondSuccess(w, initTime, "Vehicle fetched", vehicle)
			return
		}

		term := r.URL.Query().Get("q")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		vehicles, err := deps.Services.Vehicles.SearchVehicles(r.Context(), term, limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to search vehicles", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Vehicles fetched", vehicles)
	}
}

// ReassignDriverHandler handles POST /api/v1/vehicles/{vehicleID}/driver
//
// @Summary      Reassign a vehicle's driver
// @Description  Appends the change to the driver assignment ledger.
// @Tags         Vehicles
// @Accept       json
// @Produce      json
// @Param        vehicleID  path  string                  true  "Vehicle ID"
// @Param        input      body  dtos.ReassignDriverReq  true  "New driver"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/vehicles/{vehicleID}/driver [post]
func ReassignDriverHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ReassignDriverReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		entry, err := deps.Services.Vehicles.ReassignDriver(r.Context(), chi.URLParam(r, "vehicleID"), req, auth.CallerID(r.Context()))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to reassign driver", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Driver reassigned", entry)
	}
}

// CurrentDriverHandler handles GET /api/v1/vehicles/{vehicleID}/driver?as_of=YYYY-MM-DD
func CurrentDriverHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var asOf *time.Time
		if raw := r.URL.Query().Get("as_of"); raw != "" {
			parsed, err := common.ParseDateOnly(raw)
			if err != nil {
				common.RespondError(w, initTime, err, "Invalid as_of date", http.StatusBadRequest)
				return
			}
			asOf = &parsed
		}

		driver, err := deps.Services.Vehicles.CurrentDriver(r.Context(), chi.URLParam(r, "vehicleID"), asOf)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch current driver", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Current driver fetched", driver)
	}
}

// DriverHistoryHandler handles GET /api/v1/vehicles/{vehicleID}/driver/history
func DriverHistoryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		history, err := deps.Services.Vehicles.DriverHistory(r.Context(), chi.URLParam(r, "vehicleID"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch driver history", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Driver history fetched", history)
	}
}
