// FilePath: api/resources/api.resource.notifications.go
package resources

import (
	"net/http"

	"github.com/gorilla/mux"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/fleetservice"
)

// NotificationHandlers encapsulates the notification HTTP handlers
type NotificationHandlers struct {
	fleetservice *fleetservice.FleetService
}

// @Summary List all alerts
// @Description All notifications for the caller, read or unread
// @Tags notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Router /alerts [get]
// @Security BearerAuth
func (h *NotificationHandlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	alerts, err := h.fleetservice.ListAlerts(r.Context(), currentUser(r))
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, alerts)
}

// @Summary List unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications [get]
// @Security BearerAuth
func (h *NotificationHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	notifications, err := h.fleetservice.ListNotifications(r.Context(), currentUser(r))
	if err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, notifications)
}

// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} messageResponse
// @Failure 404 {object} errors.APIError
// @Router /notifications/{id}/read [put]
// @Security BearerAuth
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	requestID := nuts.NID("req", 12)

	if err := h.fleetservice.MarkNotificationRead(r.Context(), currentUser(r), id); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: "notification marked as read"})
}
