package models

import "time"

// DeviceFilters defines the available filter options for devices.
// Fields are decoded from query strings by gorilla/schema.
type DeviceFilters struct {
	SystemID        string       `schema:"system_id"`
	Status          DeviceStatus `schema:"status"`
	RegisteredAfter *time.Time   `schema:"registered_after"`
}

// DeviceInputFilters defines the available filter options for threshold rules
type DeviceInputFilters struct {
	DeviceID  string   `schema:"device_id"`
	Parameter string   `schema:"parameter"`
	MinValue  *float64 `schema:"min_value"`
	MaxValue  *float64 `schema:"max_value"`
}
