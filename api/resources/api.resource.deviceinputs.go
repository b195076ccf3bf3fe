// FilePath: api/resources/api.resource.deviceinputs.go
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

// DeviceInputHandlers encapsulates the threshold rule HTTP handlers
type DeviceInputHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary Create a threshold rule
// @Description Configure min/max bounds for a device parameter
// @Tags device-inputs
// @Accept json
// @Produce json
// @Param input body models.DeviceInput true "Threshold details"
// @Success 201 {object} models.DeviceInput
// @Failure 422 {object} errors.APIError
// @Router /device-inputs [post]
// @Security BearerAuth
func (h *DeviceInputHandlers) CreateDeviceInput(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input models.DeviceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.fleetservice.CreateDeviceInput(r.Context(), currentUser(r), &input); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, input)
}

// @Summary Get a threshold rule by ID
// @Tags device-inputs
// @Produce json
// @Param id path string true "Threshold ID"
// @Success 200 {object} models.DeviceInput
// @Failure 404 {object} errors.APIError
// @Router /device-inputs/{id} [get]
// @Security BearerAuth
func (h *DeviceInputHandlers) GetDeviceInput(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	input, err := h.fleetservice.GetDeviceInput(r.Context(), currentUser(r), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, input)
}

// @Summary List threshold rules
// @Tags device-inputs
// @Produce json
// @Success 200 {array} models.DeviceInput
// @Router /device-inputs [get]
// @Security BearerAuth
func (h *DeviceInputHandlers) ListDeviceInputs(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	inputs, err := h.fleetservice.ListDeviceInputs(r.Context(), currentUser(r), models.DeviceInputFilters{})
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, inputs)
}

// @Summary Update a threshold rule
// @Tags device-inputs
// @Accept json
// @Produce json
// @Param id path string true "Threshold ID"
// @Param input body models.DeviceInput true "Updated threshold details"
// @Success 200 {object} models.DeviceInput
// @Failure 404 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /device-inputs/{id} [put]
// @Security BearerAuth
func (h *DeviceInputHandlers) UpdateDeviceInput(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var input models.DeviceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	input.ID = id
	if err := h.fleetservice.UpdateDeviceInput(r.Context(), currentUser(r), &input); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, input)
}

// @Summary Delete a threshold rule
// @Tags device-inputs
// @Produce json
// @Param id path string true "Threshold ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /device-inputs/{id} [delete]
// @Security BearerAuth
func (h *DeviceInputHandlers) DeleteDeviceInput(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.fleetservice.DeleteDeviceInput(r.Context(), currentUser(r), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
