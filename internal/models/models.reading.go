// FilePath: internal/models/models.reading.go
package models

import "time"

// Reading is an append-only telemetry value tied to a device. Rows are
// never mutated after insert.
type Reading struct {
	ID        string    `json:"id" db:"id"`
	DeviceID  string    `json:"device_id" db:"device_id"`
	Parameter string    `json:"parameter" db:"parameter"`
	Value     float64   `json:"value" db:"value"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// ReadingIngest is the telemetry ingestion payload. Timestamp is optional;
// the service stamps the current time when absent.
type ReadingIngest struct {
	DeviceID  string     `json:"device_id"`
	Parameter string     `json:"parameter"`
	Value     float64    `json:"value"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}
