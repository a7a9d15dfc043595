package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"linkmono/internal/model"
	"linkmono/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// FindByName fetches a single user by login name.
func (r *UserPostgres) FindByName(ctx context.Context, name string) (*model.User, error) {
	const q = `
		SELECT id, name, display_name, image, created_at
		FROM users
		WHERE name = $1
	`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, name).Scan(
		&u.ID,
		&u.Name,
		&u.DisplayName,
		&u.Image,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Stats counts articles, works and comments in one round trip.
func (r *UserPostgres) Stats(ctx context.Context, userID string, includeDrafts bool) (*model.UserStats, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM articles WHERE author_id = $1 AND ($2 OR visibility)),
			(SELECT COUNT(*) FROM works WHERE author_id = $1 AND ($2 OR visibility)),
			(SELECT COUNT(*) FROM comments WHERE author_id = $1)
	`
	var s model.UserStats
	if err := r.db.QueryRowContext(ctx, q, userID, includeDrafts).Scan(
		&s.ArticleAmount,
		&s.WorkAmount,
		&s.CommentAmount,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListArticles returns the user's articles using LIMIT/OFFSET pagination and a total count.
func (r *UserPostgres) ListArticles(ctx context.Context, authorID string, includeDrafts bool, pq repository.PageQuery) (*repository.PageResult[model.Article], error) {
	const qCount = `SELECT COUNT(*) FROM articles a WHERE a.author_id = $1 AND ($2 OR a.visibility)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, authorID, includeDrafts).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(`
		SELECT %s
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.author_id = $1 AND ($2 OR a.visibility)
		ORDER BY a.created_at %[2]s, a.id %[2]s
		LIMIT $3 OFFSET $4
	`, articleColumns, direction(pq.Sort))
	rows, err := r.db.QueryContext(ctx, qList, authorID, includeDrafts, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Article]{Items: items, Total: total}, nil
}

// ListWorks returns the user's works using LIMIT/OFFSET pagination and a total count.
func (r *UserPostgres) ListWorks(ctx context.Context, authorID string, includeDrafts bool, pq repository.PageQuery) (*repository.PageResult[model.Work], error) {
	const qCount = `SELECT COUNT(*) FROM works w WHERE w.author_id = $1 AND ($2 OR w.visibility)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, authorID, includeDrafts).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(`
		SELECT %s
		FROM works w
		JOIN users u ON u.id = w.author_id
		WHERE w.author_id = $1 AND ($2 OR w.visibility)
		ORDER BY w.created_at %[2]s, w.id %[2]s
		LIMIT $3 OFFSET $4
	`, workColumns, direction(pq.Sort))
	rows, err := r.db.QueryContext(ctx, qList, authorID, includeDrafts, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := scanWorks(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Work]{Items: items, Total: total}, nil
}

// ListLearningTags returns the tags linked to the user through user_tags.
func (r *UserPostgres) ListLearningTags(ctx context.Context, userID string) ([]model.Tag, error) {
	q := fmt.Sprintf(`
		SELECT %s
		FROM user_tags ut
		JOIN tags t ON t.id = ut.tag_id
		WHERE ut.user_id = $1
		ORDER BY t.name
	`, tagColumns)
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}
