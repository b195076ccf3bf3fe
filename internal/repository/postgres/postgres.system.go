// FilePath: internal/repository/postgres/postgres.system.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

type SystemRepo struct {
	PostgresBaseRepo
}

func NewSystemRepository(db database.DB) *SystemRepo {
	repo := &PostgresBaseRepo{db: db}
	return &SystemRepo{PostgresBaseRepo: *repo}
}

func (r *SystemRepo) Create(ctx context.Context, system *models.System) error {
	query := `
		INSERT INTO systems (
			id, owner_id, name, description, widget_type, created_at, updated_at
		) VALUES (
			:id, :owner_id, :name, :description, :widget_type, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, system)
	if err != nil {
		return errors.NewDatabaseError("failed to create system", err)
	}
	return nil
}

// Get filters by id AND owner in one query so foreign rows are
// indistinguishable from absent ones.
func (r *SystemRepo) Get(ctx context.Context, id, ownerID string) (*models.System, error) {
	system := &models.System{}
	query := `SELECT * FROM systems WHERE id = $1 AND owner_id = $2`

	err := r.db.GetDB().GetContext(ctx, system, query, id, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("system not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get system", err)
	}
	return system, nil
}

func (r *SystemRepo) Update(ctx context.Context, system *models.System) error {
	query := `
		UPDATE systems SET
			name = :name,
			description = :description,
			widget_type = :widget_type,
			updated_at = :updated_at
		WHERE id = :id AND owner_id = :owner_id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, system)
	if err != nil {
		return errors.NewDatabaseError("failed to update system", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("system not found", nil)
	}

	return nil
}

func (r *SystemRepo) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM systems WHERE id = $1 AND owner_id = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete system", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("system not found", nil)
	}

	return nil
}

func (r *SystemRepo) ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*models.System, error) {
	systems := []*models.System{}
	query := `SELECT * FROM systems WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	err := r.db.GetDB().SelectContext(ctx, &systems, query, ownerID, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list systems", err)
	}

	return systems, nil
}

func (r *SystemRepo) DeleteByOwner(ctx context.Context, ownerID string, tx database.Transaction) error {
	query := `DELETE FROM systems WHERE owner_id = $1`
	if _, err := tx.ExecContext(ctx, query, ownerID); err != nil {
		return errors.NewDatabaseError("failed to delete systems by owner", err)
	}
	return nil
}
