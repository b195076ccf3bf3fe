// FilePath: internal/fleetservice/fleetservice.telemetry.go
package fleetservice

import (
	"context"
	"fmt"
	"time"

	nuts "github.com/vaudience/go-nuts"

	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

// IngestReading stores a telemetry value for one of the caller's devices
// and raises a notification for every alert-enabled threshold rule the
// value breaches.
func (s *FleetService) IngestReading(ctx context.Context, caller *models.User, ingest *models.ReadingIngest) (*models.Reading, error) {
	if ingest.DeviceID == "" {
		return nil, errors.NewValidationError("device_id is required", nil)
	}
	if ingest.Parameter == "" {
		return nil, errors.NewValidationError("parameter is required", nil)
	}

	device, err := s.resolveOwnedDevice(ctx, caller, ingest.DeviceID)
	if err != nil {
		return nil, err
	}

	ts := time.Now()
	if ingest.Timestamp != nil {
		ts = *ingest.Timestamp
	}

	reading := &models.Reading{
		ID:        nuts.NID("iot", 12),
		DeviceID:  device.ID,
		Parameter: ingest.Parameter,
		Value:     ingest.Value,
		Timestamp: ts,
	}

	if err := s.Readings.Insert(ctx, reading); err != nil {
		return nil, err
	}

	if err := s.checkThresholds(ctx, device, reading); err != nil {
		// The reading is stored; a failed breach check must not undo
		// the ingestion.
		nuts.L.Warnf("[TelemetryService] Threshold check failed for device %s: %v", device.ID, err)
	}

	return reading, nil
}

// checkThresholds creates one notification per breached rule, addressed to
// the device owner.
func (s *FleetService) checkThresholds(ctx context.Context, device *models.Device, reading *models.Reading) error {
	inputs, err := s.DeviceInputs.ListAlertEnabled(ctx, device.ID, reading.Parameter)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		if !input.Breached(reading.Value) {
			continue
		}
		notification := &models.Notification{
			ID:        nuts.NID("ntf", 12),
			UserID:    device.OwnerID,
			Message:   fmt.Sprintf("Alert: %s reported abnormal value %g for %s", device.Name, reading.Value, reading.Parameter),
			IsRead:    false,
			CreatedAt: time.Now(),
		}
		if err := s.Notifications.Create(ctx, notification); err != nil {
			return err
		}
		nuts.L.Infof("[TelemetryService] Threshold breach on device %s (%s=%g), notified user %s",
			device.ID, reading.Parameter, reading.Value, device.OwnerID)
	}
	return nil
}

// ListReadings returns telemetry for one of the caller's devices within a
// time range.
func (s *FleetService) ListReadings(ctx context.Context, caller *models.User, deviceID string, start, end time.Time, limit int) ([]*models.Reading, error) {
	device, err := s.resolveOwnedDevice(ctx, caller, deviceID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if end.IsZero() {
		end = time.Now()
	}
	return s.Readings.ListByDevice(ctx, device.ID, start, end, limit)
}
