// FilePath: internal/repository/postgres/postgres.reading.go
package postgres

import (
	"context"
	"time"

	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

type ReadingRepo struct {
	PostgresBaseRepo
}

func NewReadingRepository(db database.DB) *ReadingRepo {
	repo := &PostgresBaseRepo{db: db}
	return &ReadingRepo{PostgresBaseRepo: *repo}
}

// Insert appends a telemetry reading. Readings are never updated.
func (r *ReadingRepo) Insert(ctx context.Context, reading *models.Reading) error {
	query := `
		INSERT INTO readings (
			id, device_id, parameter, value, timestamp
		) VALUES (
			:id, :device_id, :parameter, :value, :timestamp
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, reading)
	if err != nil {
		return errors.NewDatabaseError("failed to insert reading", err)
	}
	return nil
}

func (r *ReadingRepo) ListByDevice(ctx context.Context, deviceID string, start, end time.Time, limit int) ([]*models.Reading, error) {
	readings := []*models.Reading{}
	query := `
		SELECT * FROM readings
		WHERE device_id = $1 AND timestamp BETWEEN $2 AND $3
		ORDER BY timestamp DESC LIMIT $4`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, deviceID, start, end, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list readings", err)
	}

	return readings, nil
}

func (r *ReadingRepo) DeleteByDevice(ctx context.Context, deviceID string, tx database.Transaction) error {
	query := `DELETE FROM readings WHERE device_id = $1`
	if _, err := tx.ExecContext(ctx, query, deviceID); err != nil {
		return errors.NewDatabaseError("failed to delete readings by device", err)
	}
	return nil
}
