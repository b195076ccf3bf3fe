// FilePath: internal/fleetservice/fleetservice.system.go
package fleetservice

import (
	"context"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

// CreateSystem creates a new system owned by the caller.
func (s *FleetService) CreateSystem(ctx context.Context, caller *models.User, system *models.System) error {
	if system.Name == "" {
		return errors.NewValidationError("system name is required", nil)
	}
	if system.WidgetType == "" {
		system.WidgetType = models.WidgetChart
	}
	if !models.ValidWidgetType(system.WidgetType) {
		return errors.NewValidationError("widget_type must be map, chart or indicator", nil)
	}

	system.ID = nuts.NID("sys", 12)
	system.OwnerID = caller.ID
	now := time.Now()
	system.CreatedAt = now
	system.UpdatedAt = now

	nuts.L.Infof("[SystemService] Creating system %s (%s) for user %s", system.Name, system.ID, caller.ID)
	return s.Systems.Create(ctx, system)
}

// GetSystem retrieves one of the caller's systems.
func (s *FleetService) GetSystem(ctx context.Context, caller *models.User, id string) (*models.System, error) {
	return s.Systems.Get(ctx, id, caller.ID)
}

// UpdateSystem updates one of the caller's systems.
func (s *FleetService) UpdateSystem(ctx context.Context, caller *models.User, system *models.System) error {
	if system.Name == "" {
		return errors.NewValidationError("system name is required", nil)
	}
	if !models.ValidWidgetType(system.WidgetType) {
		return errors.NewValidationError("widget_type must be map, chart or indicator", nil)
	}

	system.OwnerID = caller.ID
	system.UpdatedAt = time.Now()
	return s.Systems.Update(ctx, system)
}

// DeleteSystem deletes one of the caller's systems.
func (s *FleetService) DeleteSystem(ctx context.Context, caller *models.User, id string) error {
	return s.Systems.Delete(ctx, id, caller.ID)
}

// ListSystems lists the caller's systems.
func (s *FleetService) ListSystems(ctx context.Context, caller *models.User, offset, limit int) ([]*models.System, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Systems.ListByOwner(ctx, caller.ID, offset, limit)
}
