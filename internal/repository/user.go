package repository

import (
	"context"

	"linkmono/internal/model"
)

// UserRepository reads everything a profile page shows.
// includeDrafts widens article and work queries to rows with visibility = false.
type UserRepository interface {
	// FindByName returns the user with the given login name or sql.ErrNoRows.
	FindByName(ctx context.Context, name string) (*model.User, error)

	// Stats counts the user's articles, works and comments.
	Stats(ctx context.Context, userID string, includeDrafts bool) (*model.UserStats, error)

	// ListArticles returns a page of the user's articles and their total count.
	ListArticles(ctx context.Context, authorID string, includeDrafts bool, pq PageQuery) (*PageResult[model.Article], error)

	// ListWorks returns a page of the user's works and their total count.
	ListWorks(ctx context.Context, authorID string, includeDrafts bool, pq PageQuery) (*PageResult[model.Work], error)

	// ListLearningTags returns the tags the user marked as currently learning, by name.
	ListLearningTags(ctx context.Context, userID string) ([]model.Tag, error)
}
