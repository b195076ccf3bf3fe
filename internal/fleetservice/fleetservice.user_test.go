// FilePath: internal/fleetservice/fleetservice.user_test.go
package fleetservice

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

func (e *testEnv) makeAdmin(t *testing.T, user *models.User) *models.User {
	t.Helper()
	stored, err := e.users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	stored.IsAdmin = true
	require.NoError(t, e.users.Update(context.Background(), stored))
	return stored
}

func TestGetProfileHidesNothingFromOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")

	profile, err := env.svc.GetProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Empty(t, profile.PasswordHash, "hash must never surface")
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")

	newEmail := "alice2@example.com"
	updated, err := env.svc.UpdateProfile(ctx, alice, &models.UserUpdate{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)

	empty := ""
	_, err = env.svc.UpdateProfile(ctx, alice, &models.UserUpdate{Username: &empty})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestUpdateProfilePasswordRotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "old-pw")

	newPw := "new-pw"
	_, err := env.svc.UpdateProfile(ctx, alice, &models.UserUpdate{Password: &newPw})
	require.NoError(t, err)

	_, err = env.svc.Login(ctx, &models.UserLogin{Username: "alice", Password: "old-pw"})
	require.Error(t, err)
	_, err = env.svc.Login(ctx, &models.UserLogin{Username: "alice", Password: "new-pw"})
	require.NoError(t, err)
}

func TestAdminFlagGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")
	bob := env.register(t, "bob", "bob@example.com", "pw")
	admin := env.makeAdmin(t, env.register(t, "root", "root@example.com", "pw"))

	grant := true

	// Self-service profile updates can never grant admin.
	_, err := env.svc.UpdateProfile(ctx, alice, &models.UserUpdate{IsAdmin: &grant})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeAuthorize, errors.AsAPIError(err).Type)

	// Nor can a non-admin grant it to someone else via the admin path.
	_, err = env.svc.UpdateUser(ctx, alice, bob.ID, &models.UserUpdate{IsAdmin: &grant})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeAuthorize, errors.AsAPIError(err).Type)

	// An admin can.
	updated, err := env.svc.UpdateUser(ctx, admin, bob.ID, &models.UserUpdate{IsAdmin: &grant})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
}

func TestListUsersFiltersForeignEmails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")
	env.register(t, "bob", "bob@example.com", "pw")

	users, err := env.svc.ListUsers(ctx, alice, 0, 50)
	require.NoError(t, err)
	require.Len(t, users, 2)

	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
		if u.ID == alice.ID {
			assert.Equal(t, "alice@example.com", u.Email)
		} else {
			// Email is gated to the record owner and admins.
			assert.Empty(t, u.Email)
		}
	}
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")
	bob := env.register(t, "bob", "bob@example.com", "pw")

	system := &models.System{Name: "greenhouse"}
	require.NoError(t, env.svc.CreateSystem(ctx, alice, system))
	device := &models.Device{Name: "sensor-1", SystemID: &system.ID}
	require.NoError(t, env.svc.RegisterDevice(ctx, alice, device))
	require.NoError(t, env.svc.CreateDeviceInput(ctx, alice, &models.DeviceInput{
		DeviceID:     device.ID,
		Parameter:    "temperature",
		MinValue:     10,
		MaxValue:     20,
		AlertEnabled: true,
	}))
	_, err := env.svc.IngestReading(ctx, alice, &models.ReadingIngest{
		DeviceID:  device.ID,
		Parameter: "temperature",
		Value:     30,
	})
	require.NoError(t, err)

	bobDevice := &models.Device{Name: "bob-sensor"}
	require.NoError(t, env.svc.RegisterDevice(ctx, bob, bobDevice))

	require.NoError(t, env.svc.DeleteUser(ctx, alice.ID))

	_, err = env.users.Get(ctx, alice.ID)
	assert.True(t, errors.IsNotFound(err))
	assert.Empty(t, env.systems.systems)
	assert.Empty(t, env.deviceInputs.inputs)
	assert.Empty(t, env.notifications.notifications)
	assert.Empty(t, env.readings.readings)

	// Bob's data is untouched.
	_, err = env.svc.GetDevice(ctx, bob, bobDevice.ID)
	require.NoError(t, err)
}

func TestDeleteUserCascadesBeyondOneDevicePage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")

	// More devices than a single cleanup listing page (1000) holds.
	const deviceCount = 1001
	for i := 0; i < deviceCount; i++ {
		id := fmt.Sprintf("dev_%04d", i)
		require.NoError(t, env.devices.Create(ctx, &models.Device{
			ID:      id,
			OwnerID: alice.ID,
			Name:    fmt.Sprintf("sensor-%d", i),
			Status:  models.DeviceOff,
		}))
		require.NoError(t, env.readings.Insert(ctx, &models.Reading{
			ID:        fmt.Sprintf("iot_%04d", i),
			DeviceID:  id,
			Parameter: "temperature",
			Value:     20,
		}))
	}

	require.NoError(t, env.svc.DeleteUser(ctx, alice.ID))

	// Every reading went with its device, including those past the first
	// listing page.
	assert.Empty(t, env.readings.readings)
	assert.Empty(t, env.devices.devices)
}

func TestDeleteUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.DeleteUser(context.Background(), "usr_ghost")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
