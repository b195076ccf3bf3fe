// FilePath: internal/fleetservice/fleetservice.deviceinput.go
package fleetservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

func validateInputBounds(input *models.DeviceInput) error {
	if input.Parameter == "" {
		return errors.NewValidationError("parameter is required", nil)
	}
	if input.MinValue > input.MaxValue {
		return errors.NewValidationError("min_value must not exceed max_value", nil)
	}
	return nil
}

// CreateDeviceInput creates a threshold rule for one of the caller's
// devices.
func (s *FleetService) CreateDeviceInput(ctx context.Context, caller *models.User, input *models.DeviceInput) error {
	if err := validateInputBounds(input); err != nil {
		return err
	}
	if _, err := s.resolveOwnedDevice(ctx, caller, input.DeviceID); err != nil {
		return err
	}

	input.ID = nuts.NID("din", 12)
	input.OwnerID = caller.ID
	now := time.Now()
	input.CreatedAt = now
	input.UpdatedAt = now

	nuts.L.Infof("[DeviceInputService] Creating threshold %s for device %s", input.ID, input.DeviceID)
	return s.DeviceInputs.Create(ctx, input)
}

// GetDeviceInput retrieves one of the caller's threshold rules.
func (s *FleetService) GetDeviceInput(ctx context.Context, caller *models.User, id string) (*models.DeviceInput, error) {
	return s.DeviceInputs.Get(ctx, id, caller.ID)
}

// UpdateDeviceInput updates one of the caller's threshold rules.
func (s *FleetService) UpdateDeviceInput(ctx context.Context, caller *models.User, input *models.DeviceInput) error {
	if err := validateInputBounds(input); err != nil {
		return err
	}
	if _, err := s.resolveOwnedDevice(ctx, caller, input.DeviceID); err != nil {
		return err
	}

	input.OwnerID = caller.ID
	input.UpdatedAt = time.Now()
	return s.DeviceInputs.Update(ctx, input)
}

// DeleteDeviceInput deletes one of the caller's threshold rules.
func (s *FleetService) DeleteDeviceInput(ctx context.Context, caller *models.User, id string) error {
	return s.DeviceInputs.Delete(ctx, id, caller.ID)
}

// ListDeviceInputs lists the caller's threshold rules with optional filters.
func (s *FleetService) ListDeviceInputs(ctx context.Context, caller *models.User, filters models.DeviceInputFilters) ([]*models.DeviceInput, error) {
	return s.DeviceInputs.ListByOwner(ctx, caller.ID, filters)
}
