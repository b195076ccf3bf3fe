// FilePath: internal/fleetservice/fleetservice.ownership_test.go
package fleetservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaudience/fleethub/internal/auth"
	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

func TestSystemOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")
	bob := env.register(t, "bob", "bob@example.com", "pw")

	system := &models.System{Name: "greenhouse", WidgetType: models.WidgetMap}
	require.NoError(t, env.svc.CreateSystem(ctx, alice, system))

	got, err := env.svc.GetSystem(ctx, alice, system.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.OwnerID)

	// Bob sees someone else's system as if it did not exist.
	_, err = env.svc.GetSystem(ctx, bob, system.ID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	err = env.svc.DeleteSystem(ctx, bob, system.ID)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	// Alice's system survived Bob's delete attempt.
	_, err = env.svc.GetSystem(ctx, alice, system.ID)
	require.NoError(t, err)
}

func TestCreateSystemValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")

	err := env.svc.CreateSystem(ctx, alice, &models.System{Name: ""})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	err = env.svc.CreateSystem(ctx, alice, &models.System{Name: "x", WidgetType: "gauge"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	// Omitted widget type defaults to chart.
	system := &models.System{Name: "x"}
	require.NoError(t, env.svc.CreateSystem(ctx, alice, system))
	assert.Equal(t, models.WidgetChart, system.WidgetType)
}

func TestRegisterDeviceRequiresOwnedSystem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")
	bob := env.register(t, "bob", "bob@example.com", "pw")

	system := &models.System{Name: "greenhouse"}
	require.NoError(t, env.svc.CreateSystem(ctx, alice, system))

	device := &models.Device{Name: "sensor-1", SystemID: &system.ID}
	err := env.svc.RegisterDevice(ctx, bob, device)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, env.svc.RegisterDevice(ctx, alice, device))
	assert.Equal(t, models.DeviceOff, device.Status)
}

func TestDeviceInputBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")

	device := &models.Device{Name: "sensor-1"}
	require.NoError(t, env.svc.RegisterDevice(ctx, alice, device))

	err := env.svc.CreateDeviceInput(ctx, alice, &models.DeviceInput{
		DeviceID:  device.ID,
		Parameter: "temperature",
		MinValue:  30,
		MaxValue:  10,
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	err = env.svc.CreateDeviceInput(ctx, alice, &models.DeviceInput{
		DeviceID:  device.ID,
		Parameter: "",
		MinValue:  0,
		MaxValue:  10,
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	// Equal bounds describe a single accepted value and are allowed.
	require.NoError(t, env.svc.CreateDeviceInput(ctx, alice, &models.DeviceInput{
		DeviceID:  device.ID,
		Parameter: "temperature",
		MinValue:  20,
		MaxValue:  20,
	}))
}

func TestDeviceInputRequiresOwnedDevice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")
	bob := env.register(t, "bob", "bob@example.com", "pw")

	device := &models.Device{Name: "sensor-1"}
	require.NoError(t, env.svc.RegisterDevice(ctx, alice, device))

	err := env.svc.CreateDeviceInput(ctx, bob, &models.DeviceInput{
		DeviceID:  device.ID,
		Parameter: "temperature",
		MinValue:  0,
		MaxValue:  50,
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

// commitFailDevices hands out transactions whose Commit always fails.
type commitFailDevices struct {
	*fakeDeviceRepo
}

func (r *commitFailDevices) BeginTx(ctx context.Context) (database.Transaction, error) {
	return &fakeTx{commitErr: errors.NewDatabaseError("commit failed", nil)}, nil
}

func TestDeleteDeviceKeepsRowsWhenCommitFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")

	device := &models.Device{Name: "sensor-1"}
	require.NoError(t, env.svc.RegisterDevice(ctx, alice, device))
	_, err := env.svc.IngestReading(ctx, alice, &models.ReadingIngest{
		DeviceID:  device.ID,
		Parameter: "temperature",
		Value:     21,
	})
	require.NoError(t, err)

	failing := New(
		env.users, env.systems, &commitFailDevices{env.devices},
		env.deviceInputs, env.notifications, env.readings, env.resetTokens,
		auth.NewCredentialStore(4),
		auth.NewTokenService("test-secret", 30*time.Minute),
		15*time.Minute,
	)

	err = failing.DeleteDevice(ctx, alice, device.ID)
	require.Error(t, err)

	// The failed transaction must leave both the device and its readings
	// in place, never one without the other.
	_, err = env.svc.GetDevice(ctx, alice, device.ID)
	require.NoError(t, err)
	assert.Len(t, env.readings.readings, 1)
}

func TestNotificationOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")
	bob := env.register(t, "bob", "bob@example.com", "pw")

	require.NoError(t, env.notifications.Create(ctx, &models.Notification{
		ID:      "ntf_alice1",
		UserID:  alice.ID,
		Message: "Alert: sensor-1 reported abnormal value 30 for temperature",
	}))

	err := env.svc.MarkNotificationRead(ctx, bob, "ntf_alice1")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	// Alice's notification is still pending and still unread.
	unread, err := env.svc.ListNotifications(ctx, alice)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.False(t, unread[0].IsRead)

	// And Bob cannot read it through his own listings either.
	theirs, err := env.svc.ListAlerts(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestDeleteDeviceRemovesReadings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice", "alice@example.com", "pw")

	device := &models.Device{Name: "sensor-1"}
	require.NoError(t, env.svc.RegisterDevice(ctx, alice, device))

	_, err := env.svc.IngestReading(ctx, alice, &models.ReadingIngest{
		DeviceID:  device.ID,
		Parameter: "temperature",
		Value:     21,
	})
	require.NoError(t, err)
	require.Len(t, env.readings.readings, 1)

	require.NoError(t, env.svc.DeleteDevice(ctx, alice, device.ID))
	assert.Empty(t, env.readings.readings)
}
