// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/api/middleware"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/fleetservice"
	"github.com/vaudience/fleethub/internal/models"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Auth          *AuthHandlers
	Profile       *ProfileHandlers
	Systems       *SystemHandlers
	Devices       *DeviceHandlers
	DeviceInputs  *DeviceInputHandlers
	Notifications *NotificationHandlers
	Admin         *AdminHandlers
	Telemetry     *TelemetryHandlers
	Filters       *FilterHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *fleetservice.FleetService) *Resources {
	return &Resources{
		Auth:          &AuthHandlers{fleetservice: svc},
		Profile:       &ProfileHandlers{fleetservice: svc},
		Systems:       &SystemHandlers{fleetservice: svc},
		Devices:       &DeviceHandlers{fleetservice: svc},
		DeviceInputs:  &DeviceInputHandlers{fleetservice: svc},
		Notifications: &NotificationHandlers{fleetservice: svc},
		Admin:         &AdminHandlers{fleetservice: svc},
		Telemetry:     &TelemetryHandlers{fleetservice: svc},
		Filters:       &FilterHandlers{fleetservice: svc},
	}
}

// Helper functions

func currentUser(r *http.Request) *models.User {
	return middleware.UserFromContext(r.Context())
}

func getPaginationParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	limit, _ = strconv.Atoi(query.Get("limit"))

	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	return offset, limit
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

type messageResponse struct {
	Message string `json:"message"`
}
