package mocks

import (
	"context"
	"io"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(reader io.Reader) (domain.FeedCollection, error) {
	args := m.Called(reader)

	var items domain.FeedCollection
	if args.Get(0) != nil {
		items = args.Get(0).(domain.FeedCollection)
	}
	return items, args.Error(1)
}

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Load(ctx context.Context) (domain.FeedCollection, error) {
	args := m.Called(ctx)

	var items domain.FeedCollection
	if args.Get(0) != nil {
		items = args.Get(0).(domain.FeedCollection)
	}
	return items, args.Error(1)
}

func (m *MockSource) GetName() string {
	return "mock"
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishPageChange(ctx context.Context, event *domain.PageChange) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) LoadItems(ctx context.Context, block string) (domain.FeedCollection, error) {
	args := m.Called(ctx, block)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.FeedCollection), args.Error(1)
}

func (m *MockItemStore) ReplaceItems(ctx context.Context, block string, items domain.FeedCollection) error {
	args := m.Called(ctx, block, items)
	return args.Error(0)
}
