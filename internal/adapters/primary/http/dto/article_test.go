package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-service/internal/core/domain"
)

func TestBodyInput_UnmarshalString(t *testing.T) {
	var req CreateArticleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","body":"hello"}`), &req))

	assert.Equal(t, "hello", req.Body.Value)
	assert.Empty(t, req.Body.Format)
}

func TestBodyInput_UnmarshalObject(t *testing.T) {
	var req CreateArticleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","body":{"value":"<p>x</p>","format":"full_html"}}`), &req))

	assert.Equal(t, "<p>x</p>", req.Body.Value)
	assert.Equal(t, domain.FormatFullHTML, req.Body.Format)
}

func TestBodyInput_UnmarshalInvalid(t *testing.T) {
	var req CreateArticleRequest
	assert.Error(t, json.Unmarshal([]byte(`{"title":"t","body":42}`), &req))
}

func TestUpdateArticleRequest_ToPatch(t *testing.T) {
	var req UpdateArticleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"body":{"format":"plain_text"}}`), &req))

	patch := req.ToPatch()
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Body)
	require.NotNil(t, patch.Format)
	assert.Equal(t, domain.FormatPlainText, *patch.Format)

	req = UpdateArticleRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","body":""}`), &req))
	patch = req.ToPatch()
	require.NotNil(t, patch.Title)
	require.NotNil(t, patch.Body)
	assert.Equal(t, "", *patch.Body)
	assert.Nil(t, patch.Format)
}

func TestToListArticlesResponse(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	n := &domain.Node{
		ID: 3, UUID: uuid.New(), Type: domain.BundleArticle, Title: "t",
		Body:      domain.TextField{Value: "v", Format: domain.FormatBasicHTML},
		Status:    true,
		AuthorID:  2,
		CreatedAt: created,
		ChangedAt: created,
	}

	resp := ToListArticlesResponse([]*domain.Node{n}, 1)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "2024-05-01T10:00:00Z", resp.Items[0].Created)
	assert.Equal(t, int64(2), resp.Items[0].AuthorID)

	empty := ToListArticlesResponse(nil, 0)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}
