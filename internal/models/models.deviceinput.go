// FilePath: internal/models/models.deviceinput.go
package models

import "time"

// DeviceInput is a threshold rule for one device parameter. Readings
// outside [MinValue, MaxValue] breach the rule.
type DeviceInput struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	DeviceID     string    `json:"device_id" db:"device_id"`
	Parameter    string    `json:"parameter" db:"parameter"`
	MinValue     float64   `json:"min_value" db:"min_value"`
	MaxValue     float64   `json:"max_value" db:"max_value"`
	AlertEnabled bool      `json:"alert_enabled" db:"alert_enabled"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Breached reports whether value falls outside the configured bounds.
func (d *DeviceInput) Breached(value float64) bool {
	return value < d.MinValue || value > d.MaxValue
}
