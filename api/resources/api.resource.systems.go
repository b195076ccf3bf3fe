// FilePath: api/resources/api.resource.systems.go
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

// SystemHandlers encapsulates the system-related HTTP handlers
type SystemHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary Create a new system
// @Description Create a system grouping devices under a display widget
// @Tags systems
// @Accept json
// @Produce json
// @Param system body models.System true "System details"
// @Success 201 {object} models.System
// @Failure 422 {object} errors.APIError
// @Router /systems [post]
// @Security BearerAuth
func (h *SystemHandlers) CreateSystem(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var system models.System
	if err := json.NewDecoder(r.Body).Decode(&system); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.fleetservice.CreateSystem(r.Context(), currentUser(r), &system); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, system)
}

// @Summary Get a system by ID
// @Tags systems
// @Produce json
// @Param id path string true "System ID"
// @Success 200 {object} models.System
// @Failure 404 {object} errors.APIError
// @Router /systems/{id} [get]
// @Security BearerAuth
func (h *SystemHandlers) GetSystem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	system, err := h.fleetservice.GetSystem(r.Context(), currentUser(r), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, system)
}

// @Summary List systems
// @Tags systems
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.System
// @Router /systems [get]
// @Security BearerAuth
func (h *SystemHandlers) ListSystems(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	systems, err := h.fleetservice.ListSystems(r.Context(), currentUser(r), offset, limit)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, systems)
}

// @Summary Update a system
// @Tags systems
// @Accept json
// @Produce json
// @Param id path string true "System ID"
// @Param system body models.System true "Updated system details"
// @Success 200 {object} models.System
// @Failure 404 {object} errors.APIError
// @Router /systems/{id} [put]
// @Security BearerAuth
func (h *SystemHandlers) UpdateSystem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var system models.System
	if err := json.NewDecoder(r.Body).Decode(&system); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	system.ID = id
	if err := h.fleetservice.UpdateSystem(r.Context(), currentUser(r), &system); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, system)
}

// @Summary Delete a system
// @Tags systems
// @Produce json
// @Param id path string true "System ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /systems/{id} [delete]
// @Security BearerAuth
func (h *SystemHandlers) DeleteSystem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.fleetservice.DeleteSystem(r.Context(), currentUser(r), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
