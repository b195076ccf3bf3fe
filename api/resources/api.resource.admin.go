// FilePath: api/resources/api.resource.admin.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/fleetservice"
	"github.com/vaudience/fleethub/internal/models"
)

// AdminHandlers encapsulates the admin-only HTTP handlers
type AdminHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary List all users
// @Description Paginated list of all user accounts (admin only)
// @Tags admin
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.User
// @Failure 403 {object} errors.APIError
// @Router /admin/users [get]
// @Security BearerAuth
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	users, err := h.fleetservice.ListUsers(r.Context(), currentUser(r), offset, limit)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, users)
}

// @Summary Update a user
// @Description Edit an arbitrary user account (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param update body models.UserUpdate true "User changes"
// @Success 200 {object} models.User
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /admin/users/{id} [put]
// @Security BearerAuth
func (h *AdminHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	user, err := h.fleetservice.UpdateUser(r.Context(), currentUser(r), id, &update)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Delete a user
// @Description Delete a user account and all owned data (admin only)
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /admin/users/{id} [delete]
// @Security BearerAuth
func (h *AdminHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.fleetservice.DeleteUser(r.Context(), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
