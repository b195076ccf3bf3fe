package cleanup

import (
	"context"
	"fmt"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/models"
	"github.com/vaudience/fleethub/internal/repository"
)

// devicePageSize bounds each device listing while collecting reading
// deletions during a cascade.
const devicePageSize = 1000

// CleanupService coordinates deletion of a user and everything the user
// owns: notifications, threshold rules, readings, devices and systems.
type CleanupService struct {
	users         repository.UserRepository
	systems       repository.SystemRepository
	devices       repository.DeviceRepository
	deviceInputs  repository.DeviceInputRepository
	notifications repository.NotificationRepository
	readings      repository.ReadingRepository
	events        *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	users repository.UserRepository,
	systems repository.SystemRepository,
	devices repository.DeviceRepository,
	deviceInputs repository.DeviceInputRepository,
	notifications repository.NotificationRepository,
	readings repository.ReadingRepository,
) *CleanupService {
	return &CleanupService{
		users:         users,
		systems:       systems,
		devices:       devices,
		deviceInputs:  deviceInputs,
		notifications: notifications,
		readings:      readings,
		events:        nuts.NewEventEmitter(),
	}
}

// DeleteUser removes a user and all owned entities in one transaction.
// Child rows go first so foreign keys never dangle mid-flight.
func (s *CleanupService) DeleteUser(ctx context.Context, userID string) error {
	tx, err := s.users.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	// Readings hang off devices, so walk the device ids page by page
	// before the devices go away. The device rows themselves stay put
	// until DeleteByOwner below, so the offsets remain stable.
	for offset := 0; ; offset += devicePageSize {
		devices, err := s.devices.ListByOwner(ctx, userID, models.DeviceFilters{}, offset, devicePageSize)
		if err != nil {
			return fmt.Errorf("failed to list devices: %w", err)
		}
		for _, device := range devices {
			if err := s.readings.DeleteByDevice(ctx, device.ID, tx); err != nil {
				return fmt.Errorf("failed to delete readings: %w", err)
			}
			s.events.Emit("device.deleted", device.ID)
		}
		if len(devices) < devicePageSize {
			break
		}
	}

	if err := s.notifications.DeleteByUser(ctx, userID, tx); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	if err := s.deviceInputs.DeleteByOwner(ctx, userID, tx); err != nil {
		return fmt.Errorf("failed to delete device inputs: %w", err)
	}

	if err := s.devices.DeleteByOwner(ctx, userID, tx); err != nil {
		return fmt.Errorf("failed to delete devices: %w", err)
	}

	if err := s.systems.DeleteByOwner(ctx, userID, tx); err != nil {
		return fmt.Errorf("failed to delete systems: %w", err)
	}
	s.events.Emit("systems.deleted", userID)

	if err := s.users.Delete(ctx, userID, tx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.events.Emit("user.deleted", userID)
	nuts.L.Infof("[Cleanup] User %s and all owned data deleted", userID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
