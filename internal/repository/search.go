package repository

import (
	"context"

	"linkmono/internal/model"
)

// SearchRepository runs substring searches for the search page.
// Only published articles and works are ever matched.
type SearchRepository interface {
	// Count returns the number of rows of target matching q.
	Count(ctx context.Context, target model.SearchTarget, q string) (int, error)

	// Articles matches q against title, tag names and the author name.
	Articles(ctx context.Context, q string, pq PageQuery) ([]model.Article, error)

	// Works matches q against the title.
	Works(ctx context.Context, q string, pq PageQuery) ([]model.Work, error)

	// Users matches q against name and display name.
	Users(ctx context.Context, q string, pq PageQuery) ([]model.User, error)

	// Tags matches q against the tag name, ignoring case.
	Tags(ctx context.Context, q string, pq PageQuery) ([]model.Tag, error)
}
