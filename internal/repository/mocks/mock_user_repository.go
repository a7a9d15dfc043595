package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"linkmono/internal/model"
	"linkmono/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Stats(ctx context.Context, userID string, includeDrafts bool) (*model.UserStats, error) {
	args := m.Called(ctx, userID, includeDrafts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStats), args.Error(1)
}

func (m *MockUserRepository) ListArticles(ctx context.Context, authorID string, includeDrafts bool, pq repository.PageQuery) (*repository.PageResult[model.Article], error) {
	args := m.Called(ctx, authorID, includeDrafts, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Article]), args.Error(1)
}

func (m *MockUserRepository) ListWorks(ctx context.Context, authorID string, includeDrafts bool, pq repository.PageQuery) (*repository.PageResult[model.Work], error) {
	args := m.Called(ctx, authorID, includeDrafts, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Work]), args.Error(1)
}

func (m *MockUserRepository) ListLearningTags(ctx context.Context, userID string) ([]model.Tag, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}
