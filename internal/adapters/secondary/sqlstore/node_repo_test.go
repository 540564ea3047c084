package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"
)

func newTestRepo(t *testing.T) ports.ArticleRepository {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewArticleRepository(db)
}

func seed(t *testing.T, repo ports.ArticleRepository, bundle, title string, published bool, created time.Time) *domain.Node {
	t.Helper()
	n := domain.NewArticle(1, title, domain.TextField{Value: "body " + title, Format: domain.FormatBasicHTML}, published)
	n.Type = bundle
	n.CreatedAt = created
	n.ChangedAt = created
	require.NoError(t, repo.Create(context.Background(), n))
	require.NotZero(t, n.ID)
	return n
}

func TestNodeRepo_CreateLoad(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := seed(t, repo, domain.BundleArticle, "first", true, time.Now().UTC().Truncate(time.Second))

	loaded, err := repo.Load(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, created.UUID, loaded.UUID)
	assert.Equal(t, "first", loaded.Title)
	assert.Equal(t, "body first", loaded.Body.Value)
	assert.Equal(t, domain.FormatBasicHTML, loaded.Body.Format)
	assert.True(t, loaded.Status)
	assert.True(t, created.CreatedAt.Equal(loaded.CreatedAt))
}

func TestNodeRepo_LoadMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestNodeRepo_Save(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n := seed(t, repo, domain.BundleArticle, "before", true, time.Now().UTC())
	n.Title = "after"
	n.Status = false
	n.Body = domain.TextField{Value: "plain", Format: domain.FormatPlainText}
	require.NoError(t, repo.Save(ctx, n))

	loaded, err := repo.Load(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", loaded.Title)
	assert.False(t, loaded.Status)
	assert.Equal(t, domain.FormatPlainText, loaded.Body.Format)

	missing := *n
	missing.ID = 999
	assert.ErrorIs(t, repo.Save(ctx, &missing), domain.ErrNodeNotFound)
}

func TestNodeRepo_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n := seed(t, repo, domain.BundleArticle, "doomed", true, time.Now().UTC())
	require.NoError(t, repo.Delete(ctx, n.ID))

	_, err := repo.Load(ctx, n.ID)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, n.ID), domain.ErrNodeNotFound)
}

func TestNodeRepo_Query(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed(t, repo, domain.BundleArticle, "oldest", true, base)
	seed(t, repo, domain.BundleArticle, "draft", false, base.Add(time.Hour))
	seed(t, repo, "page", "about", true, base.Add(2*time.Hour))
	seed(t, repo, domain.BundleArticle, "newest", true, base.Add(3*time.Hour))

	all, total, err := repo.Query(ctx, ports.NodeQuery{Type: domain.BundleArticle})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Title)
	assert.Equal(t, "draft", all[1].Title)
	assert.Equal(t, "oldest", all[2].Title)

	published, total, err := repo.Query(ctx, ports.NodeQuery{Type: domain.BundleArticle, PublishedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, published, 2)

	page, total, err := repo.Query(ctx, ports.NodeQuery{Type: domain.BundleArticle, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "draft", page[0].Title)

	tail, _, err := repo.Query(ctx, ports.NodeQuery{Type: domain.BundleArticle, Offset: 2})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "oldest", tail[0].Title)
}

func TestNodeRepo_QueryEmpty(t *testing.T) {
	repo := newTestRepo(t)

	nodes, total, err := repo.Query(context.Background(), ports.NodeQuery{Type: domain.BundleArticle})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}
