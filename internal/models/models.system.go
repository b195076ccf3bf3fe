// FilePath: internal/models/models.system.go
package models

import "time"

type WidgetType string

const (
	WidgetMap       WidgetType = "map"
	WidgetChart     WidgetType = "chart"
	WidgetIndicator WidgetType = "indicator"
)

// ValidWidgetType reports whether w is one of the supported display widgets.
func ValidWidgetType(w WidgetType) bool {
	switch w {
	case WidgetMap, WidgetChart, WidgetIndicator:
		return true
	}
	return false
}

// System is a named grouping of devices owned by exactly one user.
type System struct {
	ID          string     `json:"id" db:"id"`
	OwnerID     string     `json:"owner_id" db:"owner_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	WidgetType  WidgetType `json:"widget_type" db:"widget_type"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
