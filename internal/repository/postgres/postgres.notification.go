// FilePath: internal/repository/postgres/postgres.notification.go
package postgres

import (
	"context"

	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

type NotificationRepo struct {
	PostgresBaseRepo
}

func NewNotificationRepository(db database.DB) *NotificationRepo {
	repo := &PostgresBaseRepo{db: db}
	return &NotificationRepo{PostgresBaseRepo: *repo}
}

func (r *NotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (
			id, user_id, message, is_read, created_at
		) VALUES (
			:id, :user_id, :message, :is_read, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, notification)
	if err != nil {
		return errors.NewDatabaseError("failed to create notification", err)
	}
	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	notifications := []*models.Notification{}
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	if unreadOnly {
		query = `SELECT * FROM notifications WHERE user_id = $1 AND is_read = false ORDER BY created_at DESC`
	}

	err := r.db.GetDB().SelectContext(ctx, &notifications, query, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list notifications", err)
	}

	return notifications, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	query := `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

	result, err := r.db.GetDB().ExecContext(ctx, query, id, userID)
	if err != nil {
		return errors.NewDatabaseError("failed to mark notification read", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("notification not found", nil)
	}

	return nil
}

func (r *NotificationRepo) DeleteByUser(ctx context.Context, userID string, tx database.Transaction) error {
	query := `DELETE FROM notifications WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, query, userID); err != nil {
		return errors.NewDatabaseError("failed to delete notifications by user", err)
	}
	return nil
}
