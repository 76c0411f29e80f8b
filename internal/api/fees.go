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

// CreateFeeHandler handles POST /api/v1/fees
//
// @Summary      Append a fee version
// @Description  Adds a new effective-dated fee row. Earlier versions are kept.
// @Tags         Fees
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateFeeReq  true  "Fee payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      422  {object}  dtos.APIResponse
// @Router       /api/v1/fees [post]
func CreateFeeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.CreateFeeReq

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		fee, err := deps.Services.Fees.CreateFee(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create fee", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Fee version created", fee, http.StatusCreated)
	}
}

// ResolveFeeHandler handles GET /api/v1/fees/{category}/{level}/resolve?as_of=YYYY-MM-DD
//
// @Summary      Resolve the fee in force at a date
// @Tags         Fees
// @Produce      json
// @Param        category  path   string  true   "Fee category"
// @Param        level     path   int     true   "Offense level"
// @Param        as_of     query  string  false  "Lookup date, defaults to today"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/v1/fees/{category}/{level}/resolve [get]
func ResolveFeeHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		category := chi.URLParam(r, "category")
		level, err := strconv.Atoi(chi.URLParam(r, "level"))
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid fee level", http.StatusBadRequest)
			return
		}

		asOf := time.Now().UTC()
		if raw := r.URL.Query().Get("as_of"); raw != "" {
			asOf, err = common.ParseDateOnly(raw)
			if err != nil {
				common.RespondError(w, initTime, err, "Invalid as_of date", http.StatusBadRequest)
				return
			}
		}

		resolution, err := deps.Services.Fees.Resolve(r.Context(), category, level, asOf)
		if err != nil {
			msg := constants.MsgNoApplicableFee
			if statusForError(err) == http.StatusConflict {
				msg = constants.MsgAmbiguousFee
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Fee resolved", resolution)
	}
}

// FeeHistoryHandler handles GET /api/v1/fees/{category}/{level}
func FeeHistoryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		category := chi.URLParam(r, "category")
		level, err := strconv.Atoi(chi.URLParam(r, "level"))
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid fee level", http.StatusBadRequest)
			return
		}

		fees, err := deps.Services.Fees.History(r.Context(), category, level)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch fee history", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Fee history fetched", fees)
	}
}
