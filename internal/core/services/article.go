package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"
)

// ArticleInput carries the fields of a create or full-replace request.
// A nil Status keeps the current value (published on create).
type ArticleInput struct {
	Title  string
	Body   string
	Format string
	Status *bool
}

// ArticlePatch carries the fields of a partial update; nil fields are left alone.
type ArticlePatch struct {
	Title  *string
	Body   *string
	Format *string
	Status *bool
}

func (p ArticlePatch) empty() bool {
	return p.Title == nil && p.Body == nil && p.Format == nil && p.Status == nil
}

type ArticleService struct {
	repo        ports.ArticleRepository
	invalidator ports.CacheTagInvalidator
}

func NewArticleService(repo ports.ArticleRepository, invalidator ports.CacheTagInvalidator) *ArticleService {
	return &ArticleService{repo: repo, invalidator: invalidator}
}

// Get returns the article with the given id. Missing nodes, nodes of another
// bundle and unpublished articles requested anonymously are all access denied.
func (s *ArticleService) Get(ctx context.Context, account *domain.Account, id int64) (*domain.Node, error) {
	node, err := s.repo.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}

	if !node.IsArticle() {
		return nil, domain.ErrAccessDenied
	}
	if !node.Published() && account.IsAnonymous() {
		return nil, domain.ErrAccessDenied
	}

	return node, nil
}

// List returns every article visible to account, newest first.
func (s *ArticleService) List(ctx context.Context, account *domain.Account, limit, offset int) ([]*domain.Node, int, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	nodes, total, err := s.repo.Query(ctx, ports.NodeQuery{
		Type:          domain.BundleArticle,
		PublishedOnly: account.IsAnonymous(),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, 0, err
	}
	if nodes == nil {
		nodes = []*domain.Node{}
	}

	return nodes, total, nil
}

func (s *ArticleService) Create(ctx context.Context, account *domain.Account, in ArticleInput) (*domain.Node, error) {
	if account.IsAnonymous() {
		return nil, domain.ErrAuthenticationRequired
	}

	title, body, err := validateArticleFields(in.Title, in.Body, in.Format)
	if err != nil {
		return nil, err
	}

	published := true
	if in.Status != nil {
		published = *in.Status
	}

	node := domain.NewArticle(account.ID, title, body, published)
	if err := s.repo.Create(ctx, node); err != nil {
		return nil, err
	}

	s.invalidate(ctx, domain.CacheTagNodeList)

	return s.repo.Load(ctx, node.ID)
}

// Replace overwrites title and body of an existing article.
func (s *ArticleService) Replace(ctx context.Context, account *domain.Account, id int64, in ArticleInput) (*domain.Node, error) {
	if account.IsAnonymous() {
		return nil, domain.ErrAuthenticationRequired
	}

	node, err := s.loadForWrite(ctx, id)
	if err != nil {
		return nil, err
	}

	title, body, err := validateArticleFields(in.Title, in.Body, in.Format)
	if err != nil {
		return nil, err
	}

	node.Title = title
	node.Body = body
	if in.Status != nil {
		node.Status = *in.Status
	}

	return s.save(ctx, node)
}

// Update applies the non-nil fields of patch to an existing article.
func (s *ArticleService) Update(ctx context.Context, account *domain.Account, id int64, patch ArticlePatch) (*domain.Node, error) {
	if account.IsAnonymous() {
		return nil, domain.ErrAuthenticationRequired
	}

	node, err := s.loadForWrite(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.empty() {
		return nil, domain.ErrEmptyPatch
	}

	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		node.Title = title
	}

	if patch.Body != nil || patch.Format != nil {
		value, format := node.Body.Value, node.Body.Format
		if patch.Body != nil {
			value = *patch.Body
		}
		if patch.Format != nil {
			format = *patch.Format
		}
		body, err := domain.FilterText(value, format)
		if err != nil {
			return nil, err
		}
		if body.Value == "" {
			return nil, domain.ErrMissingBody
		}
		node.Body = body
	}

	if patch.Status != nil {
		node.Status = *patch.Status
	}

	return s.save(ctx, node)
}

func (s *ArticleService) Delete(ctx context.Context, account *domain.Account, id int64) error {
	if account.IsAnonymous() {
		return domain.ErrAuthenticationRequired
	}

	node, err := s.loadForWrite(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, node.ID); err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			return domain.ErrArticleNotFound
		}
		return err
	}

	s.invalidate(ctx, domain.NodeCacheTag(node.ID), domain.CacheTagNodeList)
	return nil
}

// loadForWrite loads an article for modification; absent or foreign-bundle
// nodes are reported as not found.
func (s *ArticleService) loadForWrite(ctx context.Context, id int64) (*domain.Node, error) {
	node, err := s.repo.Load(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	if !node.IsArticle() {
		return nil, domain.ErrArticleNotFound
	}
	return node, nil
}

func (s *ArticleService) save(ctx context.Context, node *domain.Node) (*domain.Node, error) {
	node.ChangedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, node); err != nil {
		if errors.Is(err, domain.ErrNodeNotFound) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, domain.NodeCacheTag(node.ID), domain.CacheTagNodeList)

	return s.repo.Load(ctx, node.ID)
}

// invalidate is best effort; failures are logged only.
func (s *ArticleService) invalidate(ctx context.Context, tags ...string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateTags(ctx, tags...); err != nil {
		log.WithError(err).WithField("tags", tags).Warn("cache tag invalidation failed")
	}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", domain.ErrMissingTitle
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return "", domain.ErrTitleTooLong
	}
	return title, nil
}

func validateArticleFields(title, body, format string) (string, domain.TextField, error) {
	title, err := validateTitle(title)
	if err != nil {
		return "", domain.TextField{}, err
	}
	if strings.TrimSpace(body) == "" {
		return "", domain.TextField{}, domain.ErrMissingBody
	}

	filtered, err := domain.FilterText(body, format)
	if err != nil {
		return "", domain.TextField{}, err
	}
	if filtered.Value == "" {
		return "", domain.TextField{}, domain.ErrMissingBody
	}

	return title, filtered, nil
}
