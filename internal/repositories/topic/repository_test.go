package topic

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/sprout/pkg/database"
)

const upsertTopicQuery = `INSERT INTO topics \(name, slug\) VALUES \(\$1, \$2\) ON CONFLICT \(name\) DO UPDATE SET name = EXCLUDED\.name RETURNING id`

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	return NewRepository(database.NewDatabaseInstance(sqlx.NewDb(mockDB, "postgres"), logger), logger), mock
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "history", Slugify("History"))
	assert.Equal(t, "food-and-drink", Slugify("Food & Drink"))
	assert.Equal(t, "health-and-wellness", Slugify("Health  &\tWellness"))
	assert.Equal(t, "travel-tips", Slugify("Travel Tips"))
}

func TestUpsert(t *testing.T) {
	t.Run("should return the id of the upserted topic", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectBegin()
		mock.ExpectQuery(upsertTopicQuery).
			WithArgs("Food & Drink", "food-and-drink").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
		mock.ExpectCommit()

		id, err := repo.Upsert(context.Background(), "Food & Drink")
		require.NoError(t, err)
		assert.Equal(t, int64(4), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should roll back when the upsert fails", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectBegin()
		mock.ExpectQuery(upsertTopicQuery).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := repo.Upsert(context.Background(), "History")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert topic History")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should fail when no transaction can be started", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		_, err := repo.Upsert(context.Background(), "History")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
