// FilePath: internal/fleetservice/fleetservice.notification.go
package fleetservice

import (
	"context"

	"github.com/vaudience/fleethub/internal/models"
)

// ListAlerts returns all notifications for the caller, read or not.
func (s *FleetService) ListAlerts(ctx context.Context, caller *models.User) ([]*models.Notification, error) {
	return s.Notifications.ListByUser(ctx, caller.ID, false)
}

// ListNotifications returns the caller's unread notifications.
func (s *FleetService) ListNotifications(ctx context.Context, caller *models.User) ([]*models.Notification, error) {
	return s.Notifications.ListByUser(ctx, caller.ID, true)
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (s *FleetService) MarkNotificationRead(ctx context.Context, caller *models.User, id string) error {
	return s.Notifications.MarkRead(ctx, id, caller.ID)
}
