package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"article-service/internal/adapters/secondary/rediscache"
	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"
	"article-service/internal/core/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavingRepo runs afterLoad once, right after the next Load returns.
type interleavingRepo struct {
	ports.ArticleRepository
	afterLoad func()
}

func (r *interleavingRepo) Load(ctx context.Context, id int64) (*domain.Node, error) {
	node, err := r.ArticleRepository.Load(ctx, id)
	if hook := r.afterLoad; hook != nil {
		r.afterLoad = nil
		hook()
	}
	return node, err
}

type cachedStack struct {
	repo   *interleavingRepo
	svc    *services.ArticleService
	router *gin.Engine
	id     int64
}

// setupCachedRouter wires SQLite storage and a redis response cache, with one
// published article already stored.
func setupCachedRouter(t *testing.T) *cachedStack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := rediscache.New(client, time.Minute)

	base := newSQLiteRepo(t)
	node := domain.NewArticle(1, "Original", domain.TextField{Value: "first", Format: domain.FormatPlainText}, true)
	require.NoError(t, base.Create(context.Background(), node))

	repo := &interleavingRepo{ArticleRepository: base}
	svc := services.NewArticleService(repo, cache)

	return &cachedStack{repo: repo, svc: svc, router: newE2ERouter(svc, cache), id: node.ID}
}

func TestCachedGet_HitAfterMiss(t *testing.T) {
	s := setupCachedRouter(t)
	path := fmt.Sprintf("/api/articles/%d", s.id)

	w := doRequest(s.router, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = doRequest(s.router, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	// A write through the API drops the cached entry.
	w = doRequest(s.router, http.MethodDelete, path, nil, editorToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(s.router, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCachedGet_DeleteBetweenLoadAndStore(t *testing.T) {
	s := setupCachedRouter(t)
	path := fmt.Sprintf("/api/articles/%d", s.id)

	s.repo.afterLoad = func() {
		require.NoError(t, s.svc.Delete(context.Background(), editorAccount(), s.id))
	}

	// The in-flight GET still answers with what it loaded, but must not cache it.
	w := doRequest(s.router, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = doRequest(s.router, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestCachedGet_PatchBetweenLoadAndStore(t *testing.T) {
	s := setupCachedRouter(t)
	path := fmt.Sprintf("/api/articles/%d", s.id)

	s.repo.afterLoad = func() {
		_, err := s.svc.Update(context.Background(), editorAccount(), s.id, services.ArticlePatch{Title: strPtr("Renamed")})
		require.NoError(t, err)
	}

	w := doRequest(s.router, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Original", decodeObject(t, w.Body.Bytes())["title"])

	w = doRequest(s.router, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "Renamed", decodeObject(t, w.Body.Bytes())["title"])
}

func TestCachedList_CreateInvalidatesList(t *testing.T) {
	s := setupCachedRouter(t)

	w := doRequest(s.router, http.MethodGet, "/api/articles", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeObject(t, w.Body.Bytes())["total"])

	w = doRequest(s.router, http.MethodGet, "/api/articles", nil, "")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	_, err := s.svc.Create(context.Background(), editorAccount(), services.ArticleInput{Title: "Second", Body: "b"})
	require.NoError(t, err)

	w = doRequest(s.router, http.MethodGet, "/api/articles", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, float64(2), decodeObject(t, w.Body.Bytes())["total"])
}

func editorAccount() *domain.Account {
	return domain.NewAuthenticatedAccount(1, "editor", "editor")
}

func strPtr(s string) *string { return &s }
