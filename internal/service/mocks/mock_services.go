package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"linkmono/internal/model"
	"linkmono/internal/service"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, username, viewer string) (*service.ProfilePage, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfilePage), args.Error(1)
}

func (m *MockProfileService) ListArticles(ctx context.Context, username, viewer string, page int, sort model.SortOrder) (*service.ListResult[model.Article], error) {
	args := m.Called(ctx, username, viewer, page, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Article]), args.Error(1)
}

func (m *MockProfileService) ListWorks(ctx context.Context, username, viewer string, page int, sort model.SortOrder) (*service.ListResult[model.Work], error) {
	args := m.Called(ctx, username, viewer, page, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Work]), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, q service.SearchQuery) (*service.SearchPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchPage), args.Error(1)
}
