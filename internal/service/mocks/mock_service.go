package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rateanalysis/internal/repository"
	"rateanalysis/internal/service"
)

type MockService[D any] struct {
	mock.Mock
}

var _ service.Service[struct{}] = (*MockService[struct{}])(nil)

func (m *MockService[D]) Save(ctx context.Context, rec *D) (*D, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockService[D]) PartialUpdate(ctx context.Context, rec *D) (*D, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockService[D]) FindAll(ctx context.Context) ([]D, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]D), args.Error(1)
}

func (m *MockService[D]) FindPage(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[D], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[D]), args.Error(1)
}

func (m *MockService[D]) FindOne(ctx context.Context, id int64) (*D, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*D), args.Error(1)
}

func (m *MockService[D]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService[D]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
