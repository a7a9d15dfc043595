package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkQuery = `SELECT to_regclass\(\$1\) IS NOT NULL`

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("skips when schema exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		var buf bytes.Buffer
		mock.ExpectQuery(checkQuery).
			WithArgs(sentinelTable).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err = EnsureMigrated(ctx, db, zerolog.New(&buf), "db")
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "db_migration_skip")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs every step in order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).
			WithArgs(sentinelTable).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		for _, step := range steps {
			mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()

		var buf bytes.Buffer
		err = EnsureMigrated(ctx, db, zerolog.New(&buf), "db")
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "db_migration_success")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed step rolls back and is retried on next start", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// articles fails after users was created inside the transaction
		failAt := 3
		require.Equal(t, "create_table_articles", steps[failAt].Name)

		mock.ExpectQuery(checkQuery).
			WithArgs(sentinelTable).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		for _, step := range steps[:failAt] {
			mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectExec(regexp.QuoteMeta(steps[failAt].SQL)).WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db")
		assert.ErrorContains(t, err, "migration step create_table_articles failed")
		assert.NoError(t, mock.ExpectationsWereMet())

		// the rollback removed users, so the next start runs the full schema again
		mock.ExpectQuery(checkQuery).
			WithArgs(sentinelTable).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		for _, step := range steps {
			mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).
			WithArgs(sentinelTable).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin()
		for _, step := range steps {
			mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db")
		assert.ErrorContains(t, err, "commit migration")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).
			WithArgs(sentinelTable).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db")
		assert.ErrorContains(t, err, "begin migration")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).WillReturnError(errors.New("conn reset"))

		err = EnsureMigrated(ctx, db, zerolog.Nop(), "db")
		assert.ErrorContains(t, err, "failed to check sentinel table")
	})
}
