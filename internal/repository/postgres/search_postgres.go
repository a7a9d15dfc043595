package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"linkmono/internal/model"
	"linkmono/internal/repository"
)

// Match predicates per target. $1 is always a containsPattern value.
const (
	articleMatch = `a.visibility AND (
			a.title LIKE $1 ESCAPE '\'
			OR u.name LIKE $1 ESCAPE '\'
			OR EXISTS (
				SELECT 1 FROM article_tags atg JOIN tags t ON t.id = atg.tag_id
				WHERE atg.article_id = a.id AND t.name LIKE $1 ESCAPE '\'
			)
		)`
	workMatch = `w.visibility AND w.title LIKE $1 ESCAPE '\'`
	userMatch = `(u.name LIKE $1 ESCAPE '\' OR u.display_name LIKE $1 ESCAPE '\')`
	tagMatch  = `t.name ILIKE $1 ESCAPE '\'`
)

var countQueries = map[model.SearchTarget]string{
	model.TargetArticles: `SELECT COUNT(*) FROM articles a JOIN users u ON u.id = a.author_id WHERE ` + articleMatch,
	model.TargetWorks:    `SELECT COUNT(*) FROM works w WHERE ` + workMatch,
	model.TargetUsers:    `SELECT COUNT(*) FROM users u WHERE ` + userMatch,
	model.TargetTags:     `SELECT COUNT(*) FROM tags t WHERE ` + tagMatch,
}

// SearchPostgres is a PostgreSQL implementation of repository.SearchRepository.
type SearchPostgres struct {
	db *sql.DB
}

// NewSearchPostgres creates a new SearchPostgres repository.
func NewSearchPostgres(db *sql.DB) *SearchPostgres {
	return &SearchPostgres{db: db}
}

var _ repository.SearchRepository = (*SearchPostgres)(nil)

// Count returns how many rows of target match q.
func (r *SearchPostgres) Count(ctx context.Context, target model.SearchTarget, q string) (int, error) {
	query, ok := countQueries[target]
	if !ok {
		return 0, fmt.Errorf("unknown search target %q", target)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, containsPattern(q)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Articles returns a page of published articles matching q.
func (r *SearchPostgres) Articles(ctx context.Context, q string, pq repository.PageQuery) ([]model.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE %s
		ORDER BY a.created_at %[3]s, a.id %[3]s
		LIMIT $2 OFFSET $3
	`, articleColumns, articleMatch, direction(pq.Sort))
	rows, err := r.db.QueryContext(ctx, query, containsPattern(q), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return scanArticles(rows)
}

// Works returns a page of published works matching q.
func (r *SearchPostgres) Works(ctx context.Context, q string, pq repository.PageQuery) ([]model.Work, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM works w
		JOIN users u ON u.id = w.author_id
		WHERE %s
		ORDER BY w.created_at %[3]s, w.id %[3]s
		LIMIT $2 OFFSET $3
	`, workColumns, workMatch, direction(pq.Sort))
	rows, err := r.db.QueryContext(ctx, query, containsPattern(q), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return scanWorks(rows)
}

// Users returns a page of users matching q, ordered by name.
func (r *SearchPostgres) Users(ctx context.Context, q string, pq repository.PageQuery) ([]model.User, error) {
	query := `
		SELECT u.id, u.name, u.display_name, u.image, u.created_at
		FROM users u
		WHERE ` + userMatch + `
		ORDER BY u.name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, containsPattern(q), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.DisplayName, &u.Image, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Tags returns a page of tags whose name contains q in any case, ordered by name.
func (r *SearchPostgres) Tags(ctx context.Context, q string, pq repository.PageQuery) ([]model.Tag, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tags t
		WHERE %s
		ORDER BY t.name
		LIMIT $2 OFFSET $3
	`, tagColumns, tagMatch)
	rows, err := r.db.QueryContext(ctx, query, containsPattern(q), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}
