// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// UserRepository defines the interface for user account operations. Lookups
// by username/email serve the authentication gate and the reset flow.
type UserRepository interface {
	database.Repository
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string, tx database.Transaction) error
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
}

// SystemRepository defines the interface for system data operations. All
// reads and writes are scoped to the owning user inside the query itself.
type SystemRepository interface {
	database.Repository
	Create(ctx context.Context, system *models.System) error
	Get(ctx context.Context, id, ownerID string) (*models.System, error)
	Update(ctx context.Context, system *models.System) error
	Delete(ctx context.Context, id, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.System, error)
	DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error
}

// DeviceRepository defines the interface for device data operations.
// Delete rides a caller-supplied transaction so the device row and its
// readings go away atomically.
type DeviceRepository interface {
	database.Repository
	Create(ctx context.Context, device *models.Device) error
	Get(ctx context.Context, id, ownerID string) (*models.Device, error)
	Update(ctx context.Context, device *models.Device) error
	Delete(ctx context.Context, id, ownerID string, tx database.Transaction) error
	ListByOwner(ctx context.Context, ownerID string, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error)
	DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error
}

// DeviceInputRepository defines the interface for threshold rules
type DeviceInputRepository interface {
	database.Repository
	Create(ctx context.Context, input *models.DeviceInput) error
	Get(ctx context.Context, id, ownerID string) (*models.DeviceInput, error)
	Update(ctx context.Context, input *models.DeviceInput) error
	Delete(ctx context.Context, id, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string, filters models.DeviceInputFilters) ([]*models.DeviceInput, error)
	ListAlertEnabled(ctx context.Context, deviceID, parameter string) ([]*models.DeviceInput, error)
	DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error
}

// NotificationRepository defines the interface for user notifications
type NotificationRepository interface {
	database.Repository
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string, tx database.Transaction) error
}

// ReadingRepository defines the interface for telemetry readings.
// Readings are append-only; there is no update path.
type ReadingRepository interface {
	database.Repository
	Insert(ctx context.Context, reading *models.Reading) error
	ListByDevice(ctx context.Context, deviceID string, start, end time.Time, limit int) ([]*models.Reading, error)
	DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error
}

// ResetTokenRepository holds pending password reset tokens. At most one
// token is pending per email; Consume invalidates the token atomically.
type ResetTokenRepository interface {
	Issue(ctx context.Context, email string, ttl time.Duration) (token string, err error)
	Consume(ctx context.Context, token string) (email string, err error)
}
