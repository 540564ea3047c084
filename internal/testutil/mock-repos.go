package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"
)

// MockArticleRepo is a mock of ArticleRepository.
type MockArticleRepo struct {
	mock.Mock
}

func (m *MockArticleRepo) Load(ctx context.Context, id int64) (*domain.Node, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Node), args.Error(1)
}

func (m *MockArticleRepo) Create(ctx context.Context, node *domain.Node) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockArticleRepo) Save(ctx context.Context, node *domain.Node) error {
	args := m.Called(ctx, node)
	return args.Error(0)
}

func (m *MockArticleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArticleRepo) Query(ctx context.Context, q ports.NodeQuery) ([]*domain.Node, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Node), args.Int(1), args.Error(2)
}

// MockResponseCache is a mock of ResponseCache.
type MockResponseCache struct {
	mock.Mock
}

func (m *MockResponseCache) Get(ctx context.Context, key string) (*ports.CachedResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.CachedResponse), args.Error(1)
}

func (m *MockResponseCache) TagVersions(ctx context.Context, tags ...string) (ports.TagVersions, error) {
	args := m.Called(ctx, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.TagVersions), args.Error(1)
}

func (m *MockResponseCache) Set(ctx context.Context, key string, resp *ports.CachedResponse, seen ports.TagVersions) error {
	args := m.Called(ctx, key, resp, seen)
	return args.Error(0)
}

func (m *MockResponseCache) InvalidateTags(ctx context.Context, tags ...string) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

// MockTokenVerifier is a mock of TokenVerifier.
type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (*domain.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
