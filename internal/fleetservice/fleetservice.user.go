// FilePath: internal/fleetservice/fleetservice.user.go
package fleetservice

import (
	"context"
	"time"

	"github.com/itsatony/struccy"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

// callerRoles derives the field-access roles the caller holds towards the
// target user record.
func callerRoles(caller *models.User, targetID string) []string {
	roles := []string{"any"}
	if caller.ID == targetID {
		roles = append(roles, "owner")
	}
	if caller.IsAdmin {
		roles = append(roles, "admin")
	}
	return roles
}

// filterUserForRead strips fields the caller's roles may not see.
func filterUserForRead(user *models.User, roles []string) (*models.User, error) {
	filteredMap, err := struccy.StructToMapFieldsWithReadXS(user, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter user fields", err)
	}
	filtered := &models.User{}
	_, err = struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to user struct", err)
	}
	// The hash stays inside the service no matter which roles apply.
	filtered.PasswordHash = ""
	return filtered, nil
}

// GetProfile returns the caller's own user record.
func (s *FleetService) GetProfile(ctx context.Context, caller *models.User) (*models.User, error) {
	user, err := s.Users.Get(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return filterUserForRead(user, callerRoles(caller, user.ID))
}

// UpdateProfile applies the caller's profile changes. The admin flag is
// ignored here; only the admin surface may change it.
func (s *FleetService) UpdateProfile(ctx context.Context, caller *models.User, update *models.UserUpdate) (*models.User, error) {
	return s.applyUserUpdate(ctx, caller, caller.ID, update, false)
}

// ListUsers returns all user accounts. Admin only; the gate enforces the
// role before this is reached.
func (s *FleetService) ListUsers(ctx context.Context, caller *models.User, offset, limit int) ([]*models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.Users.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.User, 0, len(users))
	for _, user := range users {
		f, err := filterUserForRead(user, callerRoles(caller, user.ID))
		if err != nil {
			nuts.L.Warnf("[UserService] Failed to filter user %s: %v", user.ID, err)
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, nil
}

// UpdateUser edits an arbitrary user record (admin only).
func (s *FleetService) UpdateUser(ctx context.Context, caller *models.User, userID string, update *models.UserUpdate) (*models.User, error) {
	return s.applyUserUpdate(ctx, caller, userID, update, true)
}

// DeleteUser removes a user and cascades to all owned entities (admin only).
func (s *FleetService) DeleteUser(ctx context.Context, userID string) error {
	// Verify existence first so callers get a clean not-found.
	if _, err := s.Users.Get(ctx, userID); err != nil {
		return err
	}
	return s.Cleanup.DeleteUser(ctx, userID)
}

func (s *FleetService) applyUserUpdate(ctx context.Context, caller *models.User, userID string, update *models.UserUpdate, allowAdminFlag bool) (*models.User, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		if *update.Username == "" {
			return nil, errors.NewValidationError("username must not be empty", nil)
		}
		user.Username = *update.Username
	}
	if update.Email != nil {
		if *update.Email == "" {
			return nil, errors.NewValidationError("email must not be empty", nil)
		}
		user.Email = *update.Email
	}
	if update.Password != nil {
		hash, err := s.Credentials.HashPassword(*update.Password)
		if err != nil {
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = hash
	}
	if update.IsAdmin != nil {
		if !allowAdminFlag || !caller.IsAdmin {
			return nil, errors.NewAuthorizationError("admin flag can only be changed by an admin", nil)
		}
		user.IsAdmin = *update.IsAdmin
	}

	user.UpdatedAt = time.Now()
	if err := s.Users.Update(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Updated user %s", user.ID)
	return filterUserForRead(user, callerRoles(caller, user.ID))
}
