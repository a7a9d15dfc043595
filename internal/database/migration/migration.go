package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the schema steps, which commit together; its presence
// means the whole schema is in place.
const sentinelTable = "public.users"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL UNIQUE,
  display_name TEXT        NOT NULL DEFAULT '',
  image        TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_tags",
		SQL: `CREATE TABLE IF NOT EXISTS tags (
  id   UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
  name TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_articles",
		SQL: `CREATE TABLE IF NOT EXISTS articles (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  author_id  UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  title      TEXT        NOT NULL,
  visibility BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_article_tags",
		SQL: `CREATE TABLE IF NOT EXISTS article_tags (
  article_id UUID NOT NULL REFERENCES articles (id) ON DELETE CASCADE,
  tag_id     UUID NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
  PRIMARY KEY (article_id, tag_id)
);`,
	},
	{
		Name: "create_table_works",
		SQL: `CREATE TABLE IF NOT EXISTS works (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  author_id  UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  title      TEXT        NOT NULL,
  thumbnail  TEXT        NOT NULL DEFAULT '',
  visibility BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_comments",
		SQL: `CREATE TABLE IF NOT EXISTS comments (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  article_id UUID        NOT NULL REFERENCES articles (id) ON DELETE CASCADE,
  author_id  UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  body       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_user_tags",
		SQL: `CREATE TABLE IF NOT EXISTS user_tags (
  user_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  tag_id  UUID NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
  PRIMARY KEY (user_id, tag_id)
);`,
	},
	{
		Name: "create_index_articles_author_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_articles_author_created_at ON articles (author_id, created_at);`,
	},
	{
		Name: "create_index_articles_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles (created_at) WHERE visibility;`,
	},
	{
		Name: "create_index_works_author_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_works_author_created_at ON works (author_id, created_at);`,
	},
	{
		Name: "create_index_comments_author",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_comments_author ON comments (author_id);`,
	},
}

// EnsureMigrated checks if the users table exists and, if it doesn't, runs every
// step in a single transaction so a failed run leaves nothing behind.
func EnsureMigrated(ctx context.Context, db *sql.DB, log zerolog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With().Str("component", "database").Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Msg("")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Msg("")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			log.Error().
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Err(err).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Msg("")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("")
	}

	if err := tx.Commit(); err != nil {
		log.Error().
			Str("event", "db_migration_failed").
			Str("status", "error").
			Err(err).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("commit failed")
		return fmt.Errorf("commit migration: %w", err)
	}

	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int("steps", len(steps)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("")

	return nil
}
