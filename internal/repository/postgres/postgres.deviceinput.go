// FilePath: internal/repository/postgres/postgres.deviceinput.go
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

type DeviceInputRepo struct {
	PostgresBaseRepo
}

func NewDeviceInputRepository(db database.DB) *DeviceInputRepo {
	repo := &PostgresBaseRepo{db: db}
	return &DeviceInputRepo{PostgresBaseRepo: *repo}
}

func (r *DeviceInputRepo) Create(ctx context.Context, input *models.DeviceInput) error {
	query := `
		INSERT INTO device_inputs (
			id, owner_id, device_id, parameter, min_value, max_value,
			alert_enabled, created_at, updated_at
		) VALUES (
			:id, :owner_id, :device_id, :parameter, :min_value, :max_value,
			:alert_enabled, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, input)
	if err != nil {
		return errors.NewDatabaseError("failed to create device input", err)
	}
	return nil
}

func (r *DeviceInputRepo) Get(ctx context.Context, id, ownerID string) (*models.DeviceInput, error) {
	input := &models.DeviceInput{}
	query := `SELECT * FROM device_inputs WHERE id = $1 AND owner_id = $2`

	err := r.db.GetDB().GetContext(ctx, input, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("device input not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get device input", err)
	}
	return input, nil
}

func (r *DeviceInputRepo) Update(ctx context.Context, input *models.DeviceInput) error {
	query := `
		UPDATE device_inputs SET
			device_id = :device_id,
			parameter = :parameter,
			min_value = :min_value,
			max_value = :max_value,
			alert_enabled = :alert_enabled,
			updated_at = :updated_at
		WHERE id = :id AND owner_id = :owner_id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, input)
	if err != nil {
		return errors.NewDatabaseError("failed to update device input", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("device input not found", nil)
	}

	return nil
}

func (r *DeviceInputRepo) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM device_inputs WHERE id = $1 AND owner_id = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete device input", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("device input not found", nil)
	}

	return nil
}

func (r *DeviceInputRepo) ListByOwner(ctx context.Context, ownerID string, filters models.DeviceInputFilters) ([]*models.DeviceInput, error) {
	conditions := []string{"owner_id = $1"}
	args := []interface{}{ownerID}

	if filters.DeviceID != "" {
		args = append(args, filters.DeviceID)
		conditions = append(conditions, fmt.Sprintf("device_id = $%d", len(args)))
	}
	if filters.Parameter != "" {
		args = append(args, filters.Parameter)
		conditions = append(conditions, fmt.Sprintf("parameter = $%d", len(args)))
	}
	if filters.MinValue != nil {
		args = append(args, *filters.MinValue)
		conditions = append(conditions, fmt.Sprintf("min_value >= $%d", len(args)))
	}
	if filters.MaxValue != nil {
		args = append(args, *filters.MaxValue)
		conditions = append(conditions, fmt.Sprintf("max_value <= $%d", len(args)))
	}

	query := fmt.Sprintf(
		`SELECT * FROM device_inputs WHERE %s ORDER BY created_at DESC`,
		strings.Join(conditions, " AND "),
	)

	inputs := []*models.DeviceInput{}
	err := r.db.GetDB().SelectContext(ctx, &inputs, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list device inputs", err)
	}

	return inputs, nil
}

// ListAlertEnabled returns the alert-enabled threshold rules matching a
// device and parameter. Serves the ingestion breach check.
func (r *DeviceInputRepo) ListAlertEnabled(ctx context.Context, deviceID, parameter string) ([]*models.DeviceInput, error) {
	inputs := []*models.DeviceInput{}
	query := `
		SELECT * FROM device_inputs
		WHERE device_id = $1 AND parameter = $2 AND alert_enabled = true`

	err := r.db.GetDB().SelectContext(ctx, &inputs, query, deviceID, parameter)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list alert-enabled device inputs", err)
	}

	return inputs, nil
}

func (r *DeviceInputRepo) DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error {
	query := `DELETE FROM device_inputs WHERE owner_id = $1`
	if _, err := tx.ExecContext(ctx, query, ownerID); err != nil {
		return errors.NewDatabaseError("failed to delete device inputs by owner", err)
	}
	return nil
}
