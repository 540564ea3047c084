package domain

import (
	"sort"
	"strconv"
)

// Cache contexts a response can vary by.
const (
	CacheContextURLPath      = "url.path"
	CacheContextURLQueryArgs = "url.query_args"
	CacheContextUserRoles    = "user.roles"
)

// Cache tags invalidated by node writes.
const (
	CacheTagNodeList = "node_list"
)

// MaxAgePermanent marks metadata that never expires on its own.
const MaxAgePermanent = -1

// NodeCacheTag returns the tag identifying a single node.
func NodeCacheTag(id int64) string {
	return "node:" + strconv.FormatInt(id, 10)
}

// CacheableMetadata describes how a response may be cached: what it varies by
// (contexts), what invalidates it (tags), and for how long it stays fresh.
type CacheableMetadata struct {
	Contexts []string `json:"contexts"`
	Tags     []string `json:"tags"`
	MaxAge   int      `json:"max_age"`
}

func NewCacheableMetadata() *CacheableMetadata {
	return &CacheableMetadata{MaxAge: MaxAgePermanent}
}

func (m *CacheableMetadata) AddCacheContexts(contexts ...string) *CacheableMetadata {
	m.Contexts = mergeSorted(m.Contexts, contexts)
	return m
}

func (m *CacheableMetadata) AddCacheTags(tags ...string) *CacheableMetadata {
	m.Tags = mergeSorted(m.Tags, tags)
	return m
}

// SetMaxAge lowers the max-age; a permanent value never overrides a finite one.
func (m *CacheableMetadata) SetMaxAge(seconds int) *CacheableMetadata {
	m.MaxAge = minMaxAge(m.MaxAge, seconds)
	return m
}

// Merge folds other into m: union of contexts and tags, lowest max-age wins.
func (m *CacheableMetadata) Merge(other *CacheableMetadata) *CacheableMetadata {
	if other == nil {
		return m
	}
	m.AddCacheContexts(other.Contexts...)
	m.AddCacheTags(other.Tags...)
	m.MaxAge = minMaxAge(m.MaxAge, other.MaxAge)
	return m
}

// AddNode attaches the dependency on a single node.
func (m *CacheableMetadata) AddNode(n *Node) *CacheableMetadata {
	if n == nil {
		return m
	}
	return m.AddCacheTags(NodeCacheTag(n.ID))
}

func minMaxAge(a, b int) int {
	switch {
	case a == MaxAgePermanent:
		return b
	case b == MaxAgePermanent:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

func mergeSorted(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst)+len(src))
	out := make([]string, 0, len(dst)+len(src))
	for _, group := range [][]string{dst, src} {
		for _, s := range group {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
