// FilePath: api/resources/api.resource.filters.go
package resources

import (
	"net/http"
	"reflect"
	"time"

	"github.com/gorilla/schema"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/fleetservice"
	"github.com/vaudience/fleethub/internal/models"
)

// queryDecoder decodes filter structs from query strings. IgnoreUnknownKeys
// lets pagination params coexist with filters.
var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(time.Time{}, func(value string) reflect.Value {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}()

// FilterHandlers encapsulates the filtered listing HTTP handlers
type FilterHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary Filter devices
// @Description List the caller's devices matching query filters
// @Tags filters
// @Produce json
// @Param system_id query string false "Filter by system"
// @Param status query string false "Filter by status"
// @Param registered_after query string false "Filter by registration date"
// @Success 200 {array} models.Device
// @Router /filter/devices [get]
// @Security BearerAuth
func (h *FilterHandlers) FilterDevices(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.DeviceFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid filter parameters", err).WithRequestID(requestID))
		return
	}
	offset, limit := getPaginationParams(r)

	devices, err := h.fleetservice.ListDevices(r.Context(), currentUser(r), filters, offset, limit)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, devices)
}

// @Summary Filter threshold rules
// @Description List the caller's threshold rules matching query filters
// @Tags filters
// @Produce json
// @Param device_id query string false "Filter by device"
// @Param parameter query string false "Filter by parameter"
// @Param min_value query number false "Filter min bound"
// @Param max_value query number false "Filter max bound"
// @Success 200 {array} models.DeviceInput
// @Router /filter/device-inputs [get]
// @Security BearerAuth
func (h *FilterHandlers) FilterDeviceInputs(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var filters models.DeviceInputFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid filter parameters", err).WithRequestID(requestID))
		return
	}

	inputs, err := h.fleetservice.ListDeviceInputs(r.Context(), currentUser(r), filters)
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, inputs)
}
