// FilePath: api/resources/api.resource.telemetry.go
package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/fleetservice"
	"github.com/vaudience/fleethub/internal/models"
)

// TelemetryHandlers encapsulates the telemetry ingestion HTTP handlers
type TelemetryHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary Ingest a telemetry reading
// @Description Store a sensor value and raise notifications for breached thresholds
// @Tags telemetry
// @Accept json
// @Produce json
// @Param reading body models.ReadingIngest true "Telemetry reading"
// @Success 201 {object} models.Reading
// @Failure 404 {object} errors.APIError
// @Failure 422 {object} errors.APIError
// @Router /iot/data [post]
// @Security BearerAuth
func (h *TelemetryHandlers) IngestReading(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var ingest models.ReadingIngest
	if err := json.NewDecoder(r.Body).Decode(&ingest); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	reading, err := h.fleetservice.IngestReading(r.Context(), currentUser(r), &ingest)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, reading)
}

// @Summary List readings for a device
// @Tags telemetry
// @Produce json
// @Param id path string true "Device ID"
// @Param start query string false "Range start (RFC3339)"
// @Param end query string false "Range end (RFC3339)"
// @Success 200 {array} models.Reading
// @Failure 404 {object} errors.APIError
// @Router /devices/{id}/readings [get]
// @Security BearerAuth
func (h *TelemetryHandlers) GetDeviceReadings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	query := r.URL.Query()
	var start, end time.Time
	if s := query.Get("start"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respondWithError(w, errors.NewValidationError("invalid start time", err).WithRequestID(requestID))
			return
		}
		start = parsed
	}
	if e := query.Get("end"); e != "" {
		parsed, err := time.Parse(time.RFC3339, e)
		if err != nil {
			respondWithError(w, errors.NewValidationError("invalid end time", err).WithRequestID(requestID))
			return
		}
		end = parsed
	}

	readings, err := h.fleetservice.ListReadings(r.Context(), currentUser(r), id, start, end, 0)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, readings)
}
