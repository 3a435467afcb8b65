package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rateanalysis/internal/repository"
)

type MockRepository[D any] struct {
	mock.Mock
}

var _ repository.Repository[struct{}] = (*MockRepository[struct{}])(nil)

func (m *MockRepository[D]) Create(ctx context.Context, rec *D) (*D, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockRepository[D]) Update(ctx context.Context, id int64, rec *D) (*D, error) {
	args := m.Called(ctx, id, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockRepository[D]) FindByID(ctx context.Context, id int64) (*D, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockRepository[D]) FindAll(ctx context.Context) ([]D, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]D), args.Error(1)
}

func (m *MockRepository[D]) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[D], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[D]), args.Error(1)
}

func (m *MockRepository[D]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository[D]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
