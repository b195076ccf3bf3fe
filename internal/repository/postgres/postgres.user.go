// FilePath: internal/repository/postgres/postgres.user.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/vaudience/fleethub/internal/database"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
)

type UserRepo struct {
	PostgresBaseRepo
}

func NewUserRepository(db database.DB) *UserRepo {
	repo := &PostgresBaseRepo{db: db}
	return &UserRepo{PostgresBaseRepo: *repo}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash, is_admin, created_at, updated_at
		) VALUES (
			:id, :username, :email, :password_hash, :is_admin, :created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("username or email already exists", err)
		}
		return errors.NewDatabaseError("failed to create user", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetDB().GetContext(ctx, user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get user", err)
	}
	return user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT * FROM users WHERE username = $1`

	err := r.db.GetDB().GetContext(ctx, user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get user by username", err)
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetDB().GetContext(ctx, user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("user not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get user by email", err)
	}
	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			username = :username,
			email = :email,
			password_hash = :password_hash,
			is_admin = :is_admin,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("username or email already exists", err)
		}
		return errors.NewDatabaseError("failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("user not found", nil)
	}

	return nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.GetDB().ExecContext(ctx, query, hash, time.Now(), id)
	if err != nil {
		return errors.NewDatabaseError("failed to update password hash", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("user not found", nil)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string, tx database.Transaction) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return errors.NewDatabaseError("failed to delete user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("user not found", nil)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	users := []*models.User{}
	query := `SELECT * FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	err := r.db.GetDB().SelectContext(ctx, &users, query, limit, offset)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list users", err)
	}

	return users, nil
}
