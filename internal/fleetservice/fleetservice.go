package fleetservice

import (
	"context"
	"time"

	"github.com/vaudience/fleethub/internal/auth"
	"github.com/vaudience/fleethub/internal/cleanup"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
	"github.com/vaudience/fleethub/internal/repository"
)

// FleetService contains all repositories and service-wide dependencies
type FleetService struct {
	Users         repository.UserRepository
	Systems       repository.SystemRepository
	Devices       repository.DeviceRepository
	DeviceInputs  repository.DeviceInputRepository
	Notifications repository.NotificationRepository
	Readings      repository.ReadingRepository
	ResetTokens   repository.ResetTokenRepository
	Credentials   *auth.CredentialStore
	Tokens        *auth.TokenService
	Cleanup       *cleanup.CleanupService

	resetTokenTTL time.Duration
}

// New creates a new FleetService instance
func New(
	users repository.UserRepository,
	systems repository.SystemRepository,
	devices repository.DeviceRepository,
	deviceInputs repository.DeviceInputRepository,
	notifications repository.NotificationRepository,
	readings repository.ReadingRepository,
	resetTokens repository.ResetTokenRepository,
	credentials *auth.CredentialStore,
	tokens *auth.TokenService,
	resetTokenTTL time.Duration,
) *FleetService {
	if resetTokenTTL <= 0 {
		resetTokenTTL = 15 * time.Minute
	}
	svc := &FleetService{
		Users:         users,
		Systems:       systems,
		Devices:       devices,
		DeviceInputs:  deviceInputs,
		Notifications: notifications,
		Readings:      readings,
		ResetTokens:   resetTokens,
		Credentials:   credentials,
		Tokens:        tokens,
		resetTokenTTL: resetTokenTTL,
	}
	svc.Cleanup = cleanup.New(users, systems, devices, deviceInputs, notifications, readings)
	return svc
}

// Validate checks if all required dependencies are initialized
func (s *FleetService) Validate() error {
	if s.Users == nil {
		return ErrMissingRepository("users")
	}
	if s.Systems == nil {
		return ErrMissingRepository("systems")
	}
	if s.Devices == nil {
		return ErrMissingRepository("devices")
	}
	if s.DeviceInputs == nil {
		return ErrMissingRepository("deviceInputs")
	}
	if s.Notifications == nil {
		return ErrMissingRepository("notifications")
	}
	if s.Readings == nil {
		return ErrMissingRepository("readings")
	}
	if s.ResetTokens == nil {
		return ErrMissingRepository("resetTokens")
	}
	if s.Credentials == nil || s.Tokens == nil {
		return errors.NewInternalError("missing auth services", nil)
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}

// resolveOwnedDevice fetches a device scoped to the caller. Foreign and
// absent devices are both reported as not found.
func (s *FleetService) resolveOwnedDevice(ctx context.Context, caller *models.User, deviceID string) (*models.Device, error) {
	return s.Devices.Get(ctx, deviceID, caller.ID)
}
