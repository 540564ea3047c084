package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheableMetadata_Merge(t *testing.T) {
	a := NewCacheableMetadata().
		AddCacheContexts(CacheContextUserRoles).
		AddCacheTags(NodeCacheTag(2), CacheTagNodeList)
	b := NewCacheableMetadata().
		AddCacheContexts(CacheContextURLPath, CacheContextUserRoles).
		AddCacheTags(NodeCacheTag(1)).
		SetMaxAge(60)

	a.Merge(b)

	assert.Equal(t, []string{CacheContextURLPath, CacheContextUserRoles}, a.Contexts)
	assert.Equal(t, []string{"node:1", "node:2", CacheTagNodeList}, a.Tags)
	assert.Equal(t, 60, a.MaxAge)
}

func TestCacheableMetadata_SetMaxAge(t *testing.T) {
	m := NewCacheableMetadata()
	assert.Equal(t, MaxAgePermanent, m.MaxAge)

	m.SetMaxAge(300)
	m.SetMaxAge(MaxAgePermanent)
	assert.Equal(t, 300, m.MaxAge)

	m.SetMaxAge(30)
	assert.Equal(t, 30, m.MaxAge)

	m.Merge(nil)
	assert.Equal(t, 30, m.MaxAge)
}

func TestCacheableMetadata_AddNode(t *testing.T) {
	m := NewCacheableMetadata().AddNode(&Node{ID: 42}).AddNode(nil)
	assert.Equal(t, []string{"node:42"}, m.Tags)
}
