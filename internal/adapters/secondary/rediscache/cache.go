package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"article-service/internal/core/ports/output"
)

const defaultKeyPrefix = "article:cache:"

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "article_service",
		Subsystem: "response_cache",
		Name:      "lookups_total",
		Help:      "Response cache lookups by result",
	},
	[]string{"result"},
)

var cacheStores = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "article_service",
		Subsystem: "response_cache",
		Name:      "stores_total",
		Help:      "Response cache stores by result; stale stores were skipped after a tag invalidation",
	},
	[]string{"result"},
)

// Cache is a redis-backed ResponseCache. Each response key is also added to a
// set per cache tag so that invalidating a tag can find every dependent entry,
// and each tag carries a version counter bumped on invalidation.
type Cache struct {
	client     redis.UniversalClient
	defaultTTL time.Duration
	keyPrefix  string
}

var _ ports.ResponseCache = (*Cache)(nil)

// NewClient creates a redis client and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// New wraps client. defaultTTL applies to entries whose metadata has no max-age.
func New(client redis.UniversalClient, defaultTTL time.Duration) *Cache {
	return &Cache{
		client:     client,
		defaultTTL: defaultTTL,
		keyPrefix:  defaultKeyPrefix,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*ports.CachedResponse, error) {
	data, err := c.client.Get(ctx, c.responseKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			cacheLookups.WithLabelValues("miss").Inc()
			return nil, nil
		}
		cacheLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("get cached response: %w", err)
	}

	var resp ports.CachedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		cacheLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("unmarshal cached response: %w", err)
	}

	cacheLookups.WithLabelValues("hit").Inc()
	return &resp, nil
}

// TagVersions returns the current invalidation counter of each tag. Tags never
// invalidated report zero.
func (c *Cache) TagVersions(ctx context.Context, tags ...string) (ports.TagVersions, error) {
	return c.readVersions(ctx, c.client, tags)
}

// Set stores resp under key. The store is skipped when a tag in seen has been
// invalidated since the snapshot was taken, including concurrently with Set.
func (c *Cache) Set(ctx context.Context, key string, resp *ports.CachedResponse, seen ports.TagVersions) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal cached response: %w", err)
	}

	ttl := c.ttlFor(resp)
	if ttl == 0 {
		return nil
	}

	guarded := make([]string, 0, len(seen))
	watched := make([]string, 0, len(seen))
	for tag := range seen {
		guarded = append(guarded, tag)
		watched = append(watched, c.versionKey(tag))
	}

	responseKey := c.responseKey(key)
	stale := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.readVersions(ctx, tx, guarded)
		if err != nil {
			return err
		}
		for tag, v := range seen {
			if current[tag] != v {
				stale = true
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, responseKey, data, ttl)
			if resp.Metadata == nil {
				return nil
			}
			for _, tag := range resp.Metadata.Tags {
				tagKey := c.tagKey(tag)
				pipe.SAdd(ctx, tagKey, responseKey)
				pipe.Expire(ctx, tagKey, ttl)
			}
			return nil
		})
		return err
	}, watched...)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		stale = true
	case err != nil:
		return fmt.Errorf("store cached response: %w", err)
	}

	if stale {
		cacheStores.WithLabelValues("stale").Inc()
		return nil
	}
	cacheStores.WithLabelValues("stored").Inc()
	return nil
}

// InvalidateTags bumps each tag's version, then deletes every response stored
// under any of the tags.
func (c *Cache) InvalidateTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, tag := range tags {
			pipe.Incr(ctx, c.versionKey(tag))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bump cache tag versions: %w", err)
	}

	toDelete := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagKey := c.tagKey(tag)
		members, err := c.client.SMembers(ctx, tagKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("read cache tag %q: %w", tag, err)
		}
		toDelete = append(toDelete, members...)
		toDelete = append(toDelete, tagKey)
	}

	if err := c.client.Del(ctx, toDelete...).Err(); err != nil {
		return fmt.Errorf("invalidate cache tags: %w", err)
	}
	return nil
}

type versionReader interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

func (c *Cache) readVersions(ctx context.Context, r versionReader, tags []string) (ports.TagVersions, error) {
	versions := make(ports.TagVersions, len(tags))
	if len(tags) == 0 {
		return versions, nil
	}

	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = c.versionKey(tag)
	}

	values, err := r.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read cache tag versions: %w", err)
	}

	for i, tag := range tags {
		versions[tag] = 0
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse version of cache tag %q: %w", tag, err)
		}
		versions[tag] = v
	}
	return versions, nil
}

// ttlFor returns how long resp may be stored; zero means do not store.
func (c *Cache) ttlFor(resp *ports.CachedResponse) time.Duration {
	if resp.Metadata != nil && resp.Metadata.MaxAge >= 0 {
		return time.Duration(resp.Metadata.MaxAge) * time.Second
	}
	return c.defaultTTL
}

func (c *Cache) responseKey(key string) string {
	return c.keyPrefix + "resp:" + key
}

func (c *Cache) tagKey(tag string) string {
	return c.keyPrefix + "tag:" + tag
}

func (c *Cache) versionKey(tag string) string {
	return c.keyPrefix + "ver:" + tag
}
