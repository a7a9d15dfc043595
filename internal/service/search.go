package service

import (
	"context"
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"linkmono/internal/cache"
	"linkmono/internal/model"
	"linkmono/internal/pagination"
	"linkmono/internal/repository"
	"linkmono/internal/storage"
)

// SearchQuery is a validated search request.
// Target is empty when the request did not name one, Sort likewise.
type SearchQuery struct {
	Q      string
	Target model.SearchTarget
	Page   int
	Sort   model.SortOrder
}

// TargetTab is one entry of the target switcher. Href is empty for the active tab.
type TargetTab struct {
	Name   model.SearchTarget `json:"name"`
	Label  string             `json:"label"`
	Amount int                `json:"amount"`
	Active bool               `json:"active"`
	Href   string             `json:"href"`
}

// SearchPage is everything the search page renders. Only the collection of the
// active target is filled.
type SearchPage struct {
	Query        string             `json:"query"`
	Heading      string             `json:"heading,omitempty"`
	Targets      []TargetTab        `json:"targets"`
	Active       model.SearchTarget `json:"active"`
	Sort         model.SortOrder    `json:"sort"`
	ShowSort     bool               `json:"show_sort"`
	Page         int                `json:"page"`
	Placeholders int                `json:"placeholders"`
	Pagination   Pagination         `json:"pagination"`
	Articles     []model.Article    `json:"articles,omitempty"`
	Works        []model.Work       `json:"works,omitempty"`
	Users        []model.User       `json:"users,omitempty"`
	Tags         []model.Tag        `json:"tags,omitempty"`
}

// SearchService defines the use cases of the search page.
type SearchService interface {
	Search(ctx context.Context, q SearchQuery) (*SearchPage, error)
}

type searchService struct {
	repo   repository.SearchRepository
	counts cache.CountCache
	images *storage.ImageResolver
	log    zerolog.Logger
}

// NewSearchService constructs a new SearchService. counts and images may be nil.
func NewSearchService(repo repository.SearchRepository, counts cache.CountCache, images *storage.ImageResolver, log zerolog.Logger) SearchService {
	if counts == nil {
		counts = cache.Noop{}
	}
	return &searchService{repo: repo, counts: counts, images: images, log: log}
}

// DecodeSearchWord undoes one more level of percent-encoding, as links built by
// older clients double-encode the word. Input that is malformed or does not decode
// to valid UTF-8 is returned as is.
func DecodeSearchWord(q string) string {
	decoded, err := url.PathUnescape(q)
	if err != nil || !utf8.ValidString(decoded) {
		return q
	}
	return decoded
}

// TargetHref links to the search for q on target, keeping an explicitly requested sort.
func TargetHref(q string, target model.SearchTarget, sort model.SortOrder) string {
	href := "/search?q=" + encodeURIComponent(q) + "&target=" + string(target)
	if sort != "" {
		href += "&sort=" + string(sort)
	}
	return href
}

// RedirectURL builds the canonical search URL for a submitted search form.
// Defaults (articles, new) are left out of the URL. ok is false when word is empty.
func RedirectURL(word, target, sort string) (string, bool) {
	if word == "" {
		return "", false
	}
	u := "/search?q=" + encodeURIComponent(word)
	if target == "" {
		target = string(model.TargetArticles)
	}
	if sort == "" {
		sort = string(model.SortNew)
	}
	if target != string(model.TargetArticles) {
		u += "&target=" + encodeURIComponent(target)
	}
	if sort != string(model.SortNew) {
		u += "&sort=" + encodeURIComponent(sort)
	}
	return u, true
}

func (s *searchService) count(ctx context.Context, target model.SearchTarget, q string) (int, error) {
	if n, ok, err := s.counts.GetCount(ctx, target, q); err != nil {
		s.log.Warn().Err(err).Str("target", string(target)).Msg("count cache read failed")
	} else if ok {
		return n, nil
	}

	n, err := s.repo.Count(ctx, target, q)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", target, err)
	}
	if err := s.counts.SetCount(ctx, target, q, n); err != nil {
		s.log.Warn().Err(err).Str("target", string(target)).Msg("count cache write failed")
	}
	return n, nil
}

func (s *searchService) Search(ctx context.Context, sq SearchQuery) (*SearchPage, error) {
	if sq.Page == 0 {
		sq.Page = 1
	}
	if sq.Page < 1 {
		return nil, ErrInvalidPage
	}
	active := sq.Target
	if active == "" {
		active = model.TargetArticles
	}
	sort := sq.Sort
	if sort == "" {
		sort = model.SortNew
	}
	word := DecodeSearchWord(sq.Q)
	if !utf8.ValidString(word) {
		return nil, ErrInvalidQuery
	}

	res := &SearchPage{
		Query:    word,
		Targets:  []TargetTab{},
		Active:   active,
		Sort:     sort,
		ShowSort: active != model.TargetUsers,
		Page:     sq.Page,
	}
	if word == "" {
		return res, nil
	}
	res.Heading = fmt.Sprintf("\"%s\" の検索結果", word)

	amounts := make([]int, len(model.SearchTargets))
	pq := repository.PageQuery{
		Limit:  pagination.PageSize,
		Offset: pagination.Offset(sq.Page),
		Sort:   sort,
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range model.SearchTargets {
		g.Go(func() error {
			n, err := s.count(gctx, t, word)
			amounts[i] = n
			return err
		})
	}
	g.Go(func() (err error) {
		switch active {
		case model.TargetArticles:
			res.Articles, err = s.repo.Articles(gctx, word, pq)
		case model.TargetWorks:
			res.Works, err = s.repo.Works(gctx, word, pq)
		case model.TargetUsers:
			res.Users, err = s.repo.Users(gctx, word, pq)
		case model.TargetTags:
			res.Tags, err = s.repo.Tags(gctx, word, pq)
		}
		if err != nil {
			return fmt.Errorf("search %s: %w", active, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, t := range model.SearchTargets {
		tab := TargetTab{
			Name:   t,
			Label:  t.Label(),
			Amount: amounts[i],
			Active: t == active,
		}
		if !tab.Active {
			tab.Href = TargetHref(word, t, sq.Sort)
		}
		res.Targets = append(res.Targets, tab)

		if tab.Active {
			res.Placeholders = pagination.ItemsOnPage(tab.Amount, sq.Page)
			res.Pagination = paginationFor(tab.Amount)
		}
	}

	resolveArticles(ctx, s.images, res.Articles)
	resolveWorks(ctx, s.images, res.Works)
	resolveUsers(ctx, s.images, res.Users)
	return res, nil
}
