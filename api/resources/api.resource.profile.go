// FilePath: api/resources/api.resource.profile.go
package resources

import (
	"encoding/json"
	"net/http"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/fleetservice"
	"github.com/vaudience/fleethub/internal/models"
)

// ProfileHandlers encapsulates the profile HTTP handlers
type ProfileHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary Get own profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} errors.APIError
// @Router /profile [get]
// @Security BearerAuth
func (h *ProfileHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	user, err := h.fleetservice.GetProfile(r.Context(), currentUser(r))
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Param update body models.UserUpdate true "Profile changes"
// @Success 200 {object} models.User
// @Failure 422 {object} errors.APIError
// @Router /profile [put]
// @Security BearerAuth
func (h *ProfileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	user, err := h.fleetservice.UpdateProfile(r.Context(), currentUser(r), &update)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
