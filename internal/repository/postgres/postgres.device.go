// FilePath: internal/repository/postgres/postgres.device.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

type DeviceRepo struct {
	PostgresBaseRepo
}

func NewDeviceRepository(db database.DB) *DeviceRepo {
	repo := &PostgresBaseRepo{db: db}
	return &DeviceRepo{PostgresBaseRepo: *repo}
}

func (r *DeviceRepo) Create(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (
			id, owner_id, system_id, name, hardware_id, status, created_at, updated_at
		) VALUES (
			:id, :owner_id, :system_id, :name, :hardware_id, :status, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, device)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("hardware id already registered", err)
		}
		return errors.NewDatabaseError("failed to create device", err)
	}
	return nil
}

func (r *DeviceRepo) Get(ctx context.Context, id, ownerID string) (*models.Device, error) {
	device := &models.Device{}
	query := `SELECT * FROM devices WHERE id = $1 AND owner_id = $2`

	err := r.db.GetDB().GetContext(ctx, device, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("device not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get device", err)
	}
	return device, nil
}

func (r *DeviceRepo) Update(ctx context.Context, device *models.Device) error {
	query := `
		UPDATE devices SET
			system_id = :system_id,
			name = :name,
			hardware_id = :hardware_id,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id AND owner_id = :owner_id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, device)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("hardware id already registered", err)
		}
		return errors.NewDatabaseError("failed to update device", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("device not found", nil)
	}

	return nil
}

// Delete removes a device inside the caller's transaction, scoped to the
// owner like every other read and write.
func (r *DeviceRepo) Delete(ctx context.Context, id, ownerID string, tx database.Transaction) error {
	query := `DELETE FROM devices WHERE id = $1 AND owner_id = $2`

	result, err := tx.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete device", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("device not found", nil)
	}

	return nil
}

func (r *DeviceRepo) ListByOwner(ctx context.Context, ownerID string, filters models.DeviceFilters, offset, limit int) ([]*models.Device, error) {
	conditions := []string{"owner_id = $1"}
	args := []interface{}{ownerID}

	if filters.SystemID != "" {
		args = append(args, filters.SystemID)
		conditions = append(conditions, fmt.Sprintf("system_id = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.RegisteredAfter != nil {
		args = append(args, *filters.RegisteredAfter)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}

	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)

	query := fmt.Sprintf(
		`SELECT * FROM devices WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		strings.Join(conditions, " AND "), limitPos, limitPos+1,
	)

	devices := []*models.Device{}
	err := r.db.GetDB().SelectContext(ctx, &devices, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list devices", err)
	}

	return devices, nil
}

func (r *DeviceRepo) DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error {
	query := `DELETE FROM devices WHERE owner_id = $1`
	if _, err := tx.ExecContext(ctx, query, ownerID); err != nil {
		return errors.NewDatabaseError("failed to delete devices by owner", err)
	}
	return nil
}
