// FilePath: internal/models/models.device.go
package models

import "time"

type DeviceStatus string

const (
	DeviceOn  DeviceStatus = "on"
	DeviceOff DeviceStatus = "off"
)

// Device is a sensor unit, optionally grouped into a System. HardwareID is
// unique across the fleet when present.
type Device struct {
	ID         string       `json:"id" db:"id"`
	OwnerID    string       `json:"owner_id" db:"owner_id"`
	SystemID   *string      `json:"system_id,omitempty" db:"system_id"`
	Name       string       `json:"name" db:"name"`
	HardwareID *string      `json:"hardware_id,omitempty" db:"hardware_id"`
	Status     DeviceStatus `json:"status" db:"status"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}
