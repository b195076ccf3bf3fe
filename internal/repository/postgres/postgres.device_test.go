// FilePath: internal/repository/postgres/postgres.device_test.go
package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaudience/fleethub/internal/errors"
)

func TestDeviceDeleteRunsInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM readings WHERE device_id = \$1`).
		WithArgs("dev_abc").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM devices WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("dev_abc", "usr_alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	readings := NewReadingRepository(db)
	require.NoError(t, readings.DeleteByDevice(ctx, "dev_abc", tx))
	require.NoError(t, repo.Delete(ctx, "dev_abc", "usr_alice", tx))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceDeleteForeignOwnerNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDeviceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM devices WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("dev_abc", "usr_mallory").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	err = repo.Delete(ctx, "dev_abc", "usr_mallory", tx)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}
