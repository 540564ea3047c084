package ports

import (
	"context"

	"article-service/internal/core/domain"
)

// NodeQuery selects nodes of one bundle. A zero Limit returns every match.
type NodeQuery struct {
	Type          string
	PublishedOnly bool
	Limit         int
	Offset        int
}

// ArticleRepository is the entity storage the article service runs on.
// Load returns domain.ErrNodeNotFound when no node has the id, regardless of
// bundle; bundle checks belong to the caller.
type ArticleRepository interface {
	Load(ctx context.Context, id int64) (*domain.Node, error)
	Create(ctx context.Context, node *domain.Node) error
	Save(ctx context.Context, node *domain.Node) error
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, q NodeQuery) ([]*domain.Node, int, error)
}
