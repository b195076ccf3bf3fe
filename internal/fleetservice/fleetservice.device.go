// FilePath: internal/fleetservice/fleetservice.device.go
package fleetservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

// RegisterDevice creates a new device owned by the caller. When a system
// is given it must resolve under the caller's ownership.
func (s *FleetService) RegisterDevice(ctx context.Context, caller *models.User, device *models.Device) error {
	if device.Name == "" {
		return errors.NewValidationError("device name is required", nil)
	}
	if device.SystemID != nil {
		if _, err := s.Systems.Get(ctx, *device.SystemID, caller.ID); err != nil {
			return err
		}
	}
	if device.Status == "" {
		device.Status = models.DeviceOff
	}
	if device.Status != models.DeviceOn && device.Status != models.DeviceOff {
		return errors.NewValidationError("status must be on or off", nil)
	}

	device.ID = nuts.NID("dev", 12)
	device.OwnerID = caller.ID
	now := time.Now()
	device.CreatedAt = now
	device.UpdatedAt = now

	nuts.L.Infof("[DeviceService] Registering device %s (%s) for user %s", device.Name, device.ID, caller.ID)
	return s.Devices.Create(ctx, device)
}

// GetDevice retrieves one of the caller's devices.
func (s *FleetService) GetDevice(ctx context.Context, caller *models.User, id string) (*models.Device, error) {
	return s.Devices.Get(ctx, id, caller.ID)
}

// UpdateDevice updates one of the caller's devices.
func (s *FleetService) UpdateDevice(ctx context.Context, caller *models.User, device *models.Device) error {
	if device.Name == "" {
		return errors.NewValidationError("device name is required", nil)
	}
	if device.SystemID != nil {
		if _, err := s.Systems.Get(ctx, *device.SystemID, caller.ID); err != nil {
			return err
		}
	}
	if device.Status != models.DeviceOn && device.Status != models.DeviceOff {
		return errors.NewValidationError("status must be on or off", nil)
	}

	device.OwnerID = caller.ID
	device.UpdatedAt = time.Now()
	return s.Devices.Update(ctx, device)
}

// DeleteDevice deletes one of the caller's devices and its readings in a
// single transaction: either both are gone or neither is.
func (s *FleetService) DeleteDevice(ctx context.Context, caller *models.User, id string) error {
	device, err := s.Devices.Get(ctx, id, caller.ID)
	if err != nil {
		return err
	}

	tx, err := s.Devices.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.Readings.DeleteByDevice(ctx, device.ID, tx); err != nil {
		return err
	}
	if err := s.Devices.Delete(ctx, device.ID, caller.ID, tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ListDevices lists the caller's devices with optional filters.
func (s *FleetService) ListDevices(ctx context.Context, caller *models.User, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Devices.ListByOwner(ctx, caller.ID, filters, offset, limit)
}
