package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"linkmono/internal/model"
	"linkmono/internal/repository"
)

type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Count(ctx context.Context, target model.SearchTarget, q string) (int, error) {
	args := m.Called(ctx, target, q)
	return args.Int(0), args.Error(1)
}

func (m *MockSearchRepository) Articles(ctx context.Context, q string, pq repository.PageQuery) ([]model.Article, error) {
	args := m.Called(ctx, q, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Article), args.Error(1)
}

func (m *MockSearchRepository) Works(ctx context.Context, q string, pq repository.PageQuery) ([]model.Work, error) {
	args := m.Called(ctx, q, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Work), args.Error(1)
}

func (m *MockSearchRepository) Users(ctx context.Context, q string, pq repository.PageQuery) ([]model.User, error) {
	args := m.Called(ctx, q, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockSearchRepository) Tags(ctx context.Context, q string, pq repository.PageQuery) ([]model.Tag, error) {
	args := m.Called(ctx, q, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}
