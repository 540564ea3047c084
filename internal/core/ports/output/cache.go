package ports

import (
	"context"

	"article-service/internal/core/domain"
)

// CachedResponse is a rendered response body stored with its cache metadata.
type CachedResponse struct {
	Status   int                       `json:"status"`
	Body     []byte                    `json:"body"`
	Metadata *domain.CacheableMetadata `json:"metadata"`
}

// TagVersions maps cache tags to their invalidation counters. Every
// invalidation of a tag bumps its counter.
type TagVersions map[string]int64

// CacheTagInvalidator drops every cached entry carrying any of the tags.
type CacheTagInvalidator interface {
	InvalidateTags(ctx context.Context, tags ...string) error
}

// ResponseCache stores rendered responses keyed by their cache contexts.
// Get returns (nil, nil) on a miss.
//
// Callers snapshot TagVersions before loading the data a response is built
// from and hand the snapshot to Set, which skips the store when any of those
// tags was invalidated in between.
type ResponseCache interface {
	CacheTagInvalidator
	Get(ctx context.Context, key string) (*CachedResponse, error)
	TagVersions(ctx context.Context, tags ...string) (TagVersions, error)
	Set(ctx context.Context, key string, resp *CachedResponse, seen TagVersions) error
}
