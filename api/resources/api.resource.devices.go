// FilePath: api/resources/api.resource.devices.go
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

// DeviceHandlers encapsulates the device-related HTTP handlers
type DeviceHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary Register a new device
// @Tags devices
// @Accept json
// @Produce json
// @Param device body models.Device true "Device details"
// @Success 201 {object} models.Device
// @Failure 400 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /devices [post]
// @Security BearerAuth
func (h *DeviceHandlers) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var device models.Device
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.fleetservice.RegisterDevice(r.Context(), currentUser(r), &device); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, device)
}

// @Summary Get a device by ID
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 200 {object} models.Device
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [get]
// @Security BearerAuth
func (h *DeviceHandlers) GetDevice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	device, err := h.fleetservice.GetDevice(r.Context(), currentUser(r), id)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, device)
}

// @Summary List devices
// @Tags devices
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Device
// @Router /devices [get]
// @Security BearerAuth
func (h *DeviceHandlers) ListDevices(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	devices, err := h.fleetservice.ListDevices(r.Context(), currentUser(r), models.DeviceFilters{}, offset, limit)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, devices)
}

// @Summary Dashboard
// @Description All of the caller's devices for the dashboard view
// @Tags devices
// @Produce json
// @Success 200 {array} models.Device
// @Router /dashboard [get]
// @Security BearerAuth
func (h *DeviceHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	devices, err := h.fleetservice.ListDevices(r.Context(), currentUser(r), models.DeviceFilters{}, 0, 100)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, devices)
}

// @Summary Update a device
// @Tags devices
// @Accept json
// @Produce json
// @Param id path string true "Device ID"
// @Param device body models.Device true "Updated device details"
// @Success 200 {object} models.Device
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [put]
// @Security BearerAuth
func (h *DeviceHandlers) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	var device models.Device
	if err := json.NewDecoder(r.Body).Decode(&device); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	device.ID = id
	if err := h.fleetservice.UpdateDevice(r.Context(), currentUser(r), &device); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, device)
}

// @Summary Delete a device
// @Tags devices
// @Produce json
// @Param id path string true "Device ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /devices/{id} [delete]
// @Security BearerAuth
func (h *DeviceHandlers) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.fleetservice.DeleteDevice(r.Context(), currentUser(r), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
