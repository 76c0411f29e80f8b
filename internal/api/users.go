package api

import (
	"encoding/json"
	"net/http"
	"time"

	"bantay-usok/lungsod/internal/common"
	"bantay-usok/lungsod/internal/constants"
	"bantay-usok/lungsod/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// CreateUserHandler handles POST /api/v1/users
//
// @Summary      Create a personnel account
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        input  body  dtos.CreateUserReq  true  "User payload"
// @Success      201  {object}  dtos.APIResponse
// @Failure      409  {object}  dtos.APIResponse
// @Router       /api/v1/users [post]
func CreateUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := deps.Services.Users.CreateUser(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to create user", statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "User created", user, http.StatusCreated)
	}
}

// GetUserHandler handles GET /api/v1/users/{userID}
func GetUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := deps.Services.Users.GetUser(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			common.RespondError(w, initTime, err, constants.MsgUserNotFound, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "User fetched", user)
	}
}

// AssignRoleHandler handles POST /api/v1/users/{userID}/roles
func AssignRoleHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AssignRoleReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		mapping, err := deps.Services.Users.AssignRole(r.Context(), chi.URLParam(r, "userID"), req)
		if err != nil {
			msg := "Failed to assign role"
			if statusForError(err) == http.StatusConflict {
				msg = constants.MsgRoleAlreadyHeld
			}
			common.RespondError(w, initTime, err, msg, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "Role assigned", mapping, http.StatusCreated)
	}
}

// DeactivateUserHandler handles DELETE /api/v1/users/{userID}
func DeactivateUserHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := deps.Services.Users.DeactivateUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
			common.RespondError(w, initTime, err, constants.MsgUserNotFound, statusForError(err))
			return
		}

		common.RespondSuccess(w, initTime, "User deactivated", nil)
	}
}
