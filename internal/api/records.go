package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/db/repositories"
	"bantay-usok/lungsod/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

func recordIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
}

// CreateRecordHandler handles POST /api/v1/records
//
// @Summary      File a smoke-belching record
// @Tags         Records
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateRecordReq  true  "Record payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      422  {object}  dtos.APIResponse
// @Router       /api/v1/records [post]
func CreateRecordHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.CreateRecordReq

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		record, err := deps.Services.Records.CreateRecord(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create record", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Record created", record, http.StatusCreated)
	}
}

// GetRecordHandler handles GET /api/v1/records/{recordID}
func GetRecordHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := recordIDParam(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid record id", http.StatusBadRequest)
			return
		}

		record, err := deps.Services.Records.GetRecord(r.Context(), id)
		if err != nil {
			msg := "Failed to fetch record"
			if statusForError(err) == http.StatusNotFound {
				msg = constants.MsgRecordNotFound
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Record fetched", record)
	}
}

// SearchRecordsHandler handles GET /api/v1/records?plate=
func SearchRecordsHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		plate := r.URL.Query().Get("plate")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		records, err := deps.Services.Records.SearchRecords(r.Context(), plate, limit)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to search records", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Records fetched", records)
	}
}

// RecordViolationHandler handles POST /api/v1/records/{recordID}/violations
//
// @Summary      Record an apprehension against a record
// @Tags         Records
// @Accept       json
// @Produce      json
// @Param        recordID  path  int                     true  "Record ID"
// @Param        input     body  dtos.RecordViolationReq true  "Violation payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Router       /api/v1/records/{recordID}/violations [post]
func RecordViolationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := recordIDParam(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid record id", http.StatusBadRequest)
			return
		}

		var req dtos.RecordViolationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		violation, err := deps.Services.Records.RecordViolation(r.Context(), id, req)
		if err != nil {
			msg := "Failed to record violation"
			if statusForError(err) == http.StatusNotFound {
				msg = constants.MsgRecordNotFound
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Violation recorded", violation, http.StatusCreated)
	}
}

// PayViolationHandler handles POST /api/v1/violations/{violationID}/payments
//
// @Summary      Settle a violation
// @Description  Resolves the amount owed from the fee schedule as of the
// @Description  apprehension date and appends the payment to the record history.
// @Tags         Records
// @Accept       json
// @Produce      json
// @Param        violationID  path  int                  true  "Violation ID"
// @Param        input        body  dtos.PayViolationReq true  "Payment payload"
// @Success      200  {object}  dtos.APIResponse
// @Failure      404  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/v1/violations/{violationID}/payments [post]
func PayViolationHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := strconv.ParseInt(chi.URLParam(r, "violationID"), 10, 64)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid violation id", http.StatusBadRequest)
			return
		}

		var req dtos.PayViolationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		payment, err := deps.Services.Records.PayViolation(r.Context(), id, req)
		if err != nil {
			msg := "Failed to settle violation"
			switch {
			case errors.Is(err, repositories.ErrNoApplicableFee):
				msg = constants.MsgNoApplicableFee
			case errors.Is(err, repositories.ErrAmbiguousFee):
				msg = constants.MsgAmbiguousFee
			case errors.Is(err, repositories.ErrNotFound):
				msg = constants.MsgViolationNotFound
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Violation settled", payment)
	}
}

// RecordStatusHandler handles GET /api/v1/records/{recordID}/status
func RecordStatusHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := recordIDParam(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid record id", http.StatusBadRequest)
			return
		}

		status, err := deps.Services.Records.CurrentStatus(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch record status", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Record status fetched", status)
	}
}

// RecordHistoryHandler handles GET /api/v1/records/{recordID}/history
func RecordHistoryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := recordIDParam(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid record id", http.StatusBadRequest)
			return
		}

		history, err := deps.Services.Records.History(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch record history", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Record history fetched", history)
	}
}

// RecordSummaryHandler handles GET /api/v1/records/{recordID}/summary
func RecordSummaryHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := recordIDParam(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid record id", http.StatusBadRequest)
			return
		}

		summary, err := deps.Services.Records.Summary(r.Context(), id)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to fetch record summary", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Record summary fetched", summary)
	}
}

// RecordClearanceHandler handles POST /api/v1/records/{recordID}/clearance
func RecordClearanceHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := recordIDParam(r)
		if err != nil {
			common.RespondError(w, initTime, err, "Invalid record id", http.StatusBadRequest)
			return
		}

		var req struct {
			Details  *string `json:"details,omitempty"`
			ORNumber *string `json:"or_number,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		entry, err := deps.Services.Records.RecordClearance(r.Context(), id, req.Details, req.ORNumber)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to record clearance", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Clearance recorded", entry, http.StatusCreated)
	}
}
