package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewDatabaseInstance(sqlx.NewDb(mockDB, "postgres"), logger), mock
}

func TestGetTx(t *testing.T) {
	t.Run("should begin a new transaction and store it on the context", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ctx, tx, err := db.GetTx(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, tx.IsOpen())
		assert.True(t, tx.IsOwner())

		_, joined, err := db.GetTx(ctx, nil)
		require.NoError(t, err)
		assert.False(t, joined.IsOwner())

		require.NoError(t, tx.Commit(ctx))
		assert.False(t, tx.IsOpen())
		assert.False(t, joined.IsOpen())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should not finalise the transaction from a joined handle", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		ctx, tx, err := db.GetTx(context.Background(), nil)
		require.NoError(t, err)

		_, joined, err := db.GetTx(ctx, nil)
		require.NoError(t, err)
		require.NoError(t, joined.Commit(ctx))
		require.NoError(t, joined.Rollback(ctx))
		assert.True(t, tx.IsOpen())

		require.NoError(t, tx.Rollback(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should release the transaction only once", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		ctx, tx, err := db.GetTx(context.Background(), nil)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		// a deferred rollback after commit is a no-op
		require.NoError(t, tx.Rollback(ctx))
		require.NoError(t, tx.Commit(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should begin a fresh transaction once the context transaction is closed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectRollback()

		ctx, tx, err := db.GetTx(context.Background(), nil)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		ctx, next, err := db.GetTx(ctx, nil)
		require.NoError(t, err)
		assert.True(t, next.IsOwner())
		require.NoError(t, next.Rollback(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should return an error when begin fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		_, tx, err := db.GetTx(context.Background(), nil)
		assert.Error(t, err)
		assert.Nil(t, tx)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("should surface commit failures", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		ctx, tx, err := db.GetTx(context.Background(), nil)
		require.NoError(t, err)

		err = tx.Commit(ctx)
		assert.Error(t, err)
		assert.False(t, tx.IsOpen())
	})
}
