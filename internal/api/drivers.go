package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CreateDriverHandler handles POST /api/v1/drivers
//
// @Summary      Register a driver
// @Tags         Drivers
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateDriverReq  true  "Driver payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/v1/drivers [post]
func CreateDriverHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.CreateDriverReq

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		driver, err := deps.Services.Drivers.CreateDriver(r.Context(), req)
		if err != nil {
			msg := "Failed to register driver"
			if statusForError(err) == http.StatusConflict {
				msg = constants.MsgDriverExists
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Driver registered", driver, http.StatusCreated)
	}
}

// GetDriverHandler handles GET /api/v1/drivers/{driverID}
func GetDriverHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		driver, err := deps.Services.Drivers.GetDriver(r.Context(), chi.URLParam(r, "driverID"))
		if err != nil {
			msg := "Failed to fetch driver"
			if statusForError(err) == http.StatusNotFound {
				msg = constants.MsgDriverNotFound
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Driver fetched", driver)
	}
}

// SearchDriversHandler handles GET /api/v1/drivers?name= or ?license=
func SearchDriversHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if license := r.URL.Query().Get("license"); license != "" {
			driver, err := deps.Services.Drivers.FindByLicense(r.Context(), license)
			if err != nil {
				common.RespondError(w, initTime, err, "Failed to fetch driver", statusForError(err))
				return
			}
			common.RespondSuccess(w, initTime, "Driver fetched", driver)
			return
		}

		name := r.URL.Query().Get("name")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		drivers, err := deps.Services.Drivers.SearchDrivers(r.Context(), name, limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to search drivers", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Drivers fetched", drivers)
	}
}
