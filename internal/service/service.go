// Package service assembles page view models from repositories: the user profile page
// and the multi-target search page.
package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"linkmono/internal/model"
	"linkmono/internal/pagination"
	"linkmono/internal/storage"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidPage  = errors.New("page must be 1 or greater")
	ErrInvalidQuery = errors.New("search word is not valid UTF-8")
)

// Pagination tells the client whether to draw page links and how many.
type Pagination struct {
	TotalPages int  `json:"total_pages"`
	Shown      bool `json:"shown"`
}

func paginationFor(amount int) Pagination {
	return Pagination{
		TotalPages: pagination.TotalPages(amount),
		Shown:      pagination.HasMore(amount),
	}
}

// ListResult is one page of a collection.
type ListResult[T any] struct {
	Items      []T        `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Pagination Pagination `json:"pagination"`
}

// encodeURIComponent escapes s for use as a query value, spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func resolveArticles(ctx context.Context, images *storage.ImageResolver, items []model.Article) {
	for i := range items {
		items[i].Author.Image = images.Resolve(ctx, items[i].Author.Image)
	}
}

func resolveWorks(ctx context.Context, images *storage.ImageResolver, items []model.Work) {
	for i := range items {
		items[i].Thumbnail = images.Resolve(ctx, items[i].Thumbnail)
		items[i].Author.Image = images.Resolve(ctx, items[i].Author.Image)
	}
}

func resolveUsers(ctx context.Context, images *storage.ImageResolver, items []model.User) {
	for i := range items {
		items[i].Image = images.Resolve(ctx, items[i].Image)
	}
}
