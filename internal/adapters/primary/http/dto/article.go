package dto

import (
	"encoding/json"
	"time"

	"article-service/internal/core/domain"
	"article-service/internal/core/services"
)

const timeFormat = time.RFC3339

// ============================================================================
// Request DTOs
// ============================================================================

// BodyInput accepts either a bare string or an object {"value", "format"}.
type BodyInput struct {
	Value  string `json:"value"`
	Format string `json:"format" binding:"omitempty,textformat"`
}

func (b *BodyInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Value = s
		b.Format = ""
		return nil
	}

	type plain BodyInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BodyInput(p)
	return nil
}

// CreateArticleRequest is used for POST and PUT. Required fields are checked by
// the article service so that PUT can report a missing article first.
type CreateArticleRequest struct {
	Title  string    `json:"title"`
	Body   BodyInput `json:"body"`
	Status *bool     `json:"status"`
}

type UpdateArticleRequest struct {
	Title  *string    `json:"title"`
	Body   *BodyInput `json:"body"`
	Status *bool      `json:"status"`
}

func (r *CreateArticleRequest) ToInput() services.ArticleInput {
	return services.ArticleInput{
		Title:  r.Title,
		Body:   r.Body.Value,
		Format: r.Body.Format,
		Status: r.Status,
	}
}

func (r *UpdateArticleRequest) ToPatch() services.ArticlePatch {
	patch := services.ArticlePatch{
		Title:  r.Title,
		Status: r.Status,
	}
	if r.Body != nil {
		if r.Body.Value != "" || r.Body.Format == "" {
			value := r.Body.Value
			patch.Body = &value
		}
		if r.Body.Format != "" {
			format := r.Body.Format
			patch.Format = &format
		}
	}
	return patch
}

// ============================================================================
// Response DTOs
// ============================================================================

type BodyResponse struct {
	Value  string `json:"value"`
	Format string `json:"format"`
}

type ArticleResponse struct {
	ID       int64        `json:"id"`
	UUID     string       `json:"uuid"`
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Body     BodyResponse `json:"body"`
	Status   bool         `json:"status"`
	AuthorID int64        `json:"uid"`
	Created  string       `json:"created"`
	Changed  string       `json:"changed"`
}

type ListArticlesResponse struct {
	Items []ArticleResponse `json:"items"`
	Total int               `json:"total"`
}

func ToArticleResponse(n *domain.Node) ArticleResponse {
	return ArticleResponse{
		ID:    n.ID,
		UUID:  n.UUID.String(),
		Type:  n.Type,
		Title: n.Title,
		Body: BodyResponse{
			Value:  n.Body.Value,
			Format: n.Body.Format,
		},
		Status:   n.Status,
		AuthorID: n.AuthorID,
		Created:  n.CreatedAt.Format(timeFormat),
		Changed:  n.ChangedAt.Format(timeFormat),
	}
}

func ToListArticlesResponse(nodes []*domain.Node, total int) ListArticlesResponse {
	items := make([]ArticleResponse, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, ToArticleResponse(n))
	}
	return ListArticlesResponse{Items: items, Total: total}
}
