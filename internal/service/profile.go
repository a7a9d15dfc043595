package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"linkmono/internal/model"
	"linkmono/internal/pagination"
	"linkmono/internal/repository"
	"linkmono/internal/storage"
)

const siteName = "Link Mono"

// PageMetadata is the document title and description of a page.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StatusItem is one counter in the profile header.
type StatusItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ProfileHeader is the identity block at the top of a profile.
type ProfileHeader struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Heading     string `json:"heading"`
	Image       string `json:"image"`
	GitHubURL   string `json:"github_url"`
}

// Section is the first page of a profile collection. MoreURL is set when the
// collection does not fit on one page.
type Section[T any] struct {
	Items   []T    `json:"items"`
	Total   int    `json:"total"`
	MoreURL string `json:"more_url,omitempty"`
}

// ProfilePage is everything the profile page renders.
// Drafts appear in Articles and Works only when IsCurrentUser is true.
type ProfilePage struct {
	Metadata      PageMetadata           `json:"metadata"`
	User          ProfileHeader          `json:"user"`
	IsCurrentUser bool                   `json:"is_current_user"`
	Stats         []StatusItem           `json:"stats"`
	Tags          []model.Tag            `json:"tags"`
	Articles      Section[model.Article] `json:"articles"`
	Works         Section[model.Work]    `json:"works"`
}

// ProfileService defines the use cases of the profile pages.
type ProfileService interface {
	// Get assembles the profile of username as seen by viewer ("" for anonymous).
	Get(ctx context.Context, username, viewer string) (*ProfilePage, error)

	// ListArticles returns one page of the user's articles.
	ListArticles(ctx context.Context, username, viewer string, page int, sort model.SortOrder) (*ListResult[model.Article], error)

	// ListWorks returns one page of the user's works.
	ListWorks(ctx context.Context, username, viewer string, page int, sort model.SortOrder) (*ListResult[model.Work], error)
}

type profileService struct {
	users  repository.UserRepository
	images *storage.ImageResolver
}

// NewProfileService constructs a new ProfileService. images may be nil.
func NewProfileService(users repository.UserRepository, images *storage.ImageResolver) ProfileService {
	return &profileService{users: users, images: images}
}

// ProfileMetadata builds the title and description for user's profile.
func ProfileMetadata(u model.User) PageMetadata {
	name := u.DisplayName
	if name == "" {
		name = u.Name
	}
	return PageMetadata{
		Title:       fmt.Sprintf("%sさんのプロフィール | %s", name, siteName),
		Description: fmt.Sprintf("%sさんのプロフィール", name),
	}
}

func (s *profileService) findUser(ctx context.Context, username string) (*model.User, error) {
	u, err := s.users.FindByName(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *profileService) Get(ctx context.Context, username, viewer string) (*ProfilePage, error) {
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	isCurrentUser := viewer != "" && viewer == u.Name
	first := repository.PageQuery{Limit: pagination.PageSize, Sort: model.SortNew}

	var (
		stats    *model.UserStats
		articles *repository.PageResult[model.Article]
		works    *repository.PageResult[model.Work]
		tags     []model.Tag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = s.users.Stats(gctx, u.ID, isCurrentUser)
		return err
	})
	g.Go(func() (err error) {
		articles, err = s.users.ListArticles(gctx, u.ID, isCurrentUser, first)
		return err
	})
	g.Go(func() (err error) {
		works, err = s.users.ListWorks(gctx, u.ID, isCurrentUser, first)
		return err
	})
	g.Go(func() (err error) {
		tags, err = s.users.ListLearningTags(gctx, u.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load profile %s: %w", u.Name, err)
	}

	resolveArticles(ctx, s.images, articles.Items)
	resolveWorks(ctx, s.images, works.Items)

	page := &ProfilePage{
		Metadata: ProfileMetadata(*u),
		User: ProfileHeader{
			Name:        u.Name,
			DisplayName: u.DisplayName,
			Heading:     u.Heading(),
			Image:       s.images.Resolve(ctx, u.Image),
			GitHubURL:   fmt.Sprintf("https://github.com/%s/", u.Name),
		},
		IsCurrentUser: isCurrentUser,
		Stats: []StatusItem{
			{Label: "記事", Value: stats.ArticleAmount},
			{Label: "制作物", Value: stats.WorkAmount},
			{Label: "コメント", Value: stats.CommentAmount},
		},
		Tags:     tags,
		Articles: Section[model.Article]{Items: articles.Items, Total: stats.ArticleAmount},
		Works:    Section[model.Work]{Items: works.Items, Total: stats.WorkAmount},
	}
	if pagination.HasMore(stats.ArticleAmount) {
		page.Articles.MoreURL = "/" + u.Name + "/articles"
	}
	if pagination.HasMore(stats.WorkAmount) {
		page.Works.MoreURL = "/" + u.Name + "/works"
	}
	return page, nil
}

func (s *profileService) ListArticles(ctx context.Context, username, viewer string, page int, sort model.SortOrder) (*ListResult[model.Article], error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	res, err := s.users.ListArticles(ctx, u.ID, viewer != "" && viewer == u.Name, repository.PageQuery{
		Limit:  pagination.PageSize,
		Offset: pagination.Offset(page),
		Sort:   sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	resolveArticles(ctx, s.images, res.Items)
	return &ListResult[model.Article]{
		Items:      res.Items,
		Total:      res.Total,
		Page:       page,
		Pagination: paginationFor(res.Total),
	}, nil
}

func (s *profileService) ListWorks(ctx context.Context, username, viewer string, page int, sort model.SortOrder) (*ListResult[model.Work], error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	u, err := s.findUser(ctx, username)
	if err != nil {
		return nil, err
	}
	res, err := s.users.ListWorks(ctx, u.ID, viewer != "" && viewer == u.Name, repository.PageQuery{
		Limit:  pagination.PageSize,
		Offset: pagination.Offset(page),
		Sort:   sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	resolveWorks(ctx, s.images, res.Items)
	return &ListResult[model.Work]{
		Items:      res.Items,
		Total:      res.Total,
		Page:       page,
		Pagination: paginationFor(res.Total),
	}, nil
}
