package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	headerCacheContexts = "X-Cache-Contexts"
	headerCacheTags     = "X-Cache-Tags"
	headerCacheStatus   = "X-Cache"
	contentTypeJSON     = "application/json; charset=utf-8"
)

// newCacheability returns the metadata every article GET response carries.
func (h *Handler) newCacheability() *domain.CacheableMetadata {
	return domain.NewCacheableMetadata().
		AddCacheContexts(domain.CacheContextURLPath, domain.CacheContextUserRoles).
		SetMaxAge(h.cacheMaxAge)
}

// cacheKey derives the response cache key from the values of the metadata's
// cache contexts for this request.
func cacheKey(c *gin.Context, account *domain.Account, meta *domain.CacheableMetadata) string {
	parts := make([]string, 0, len(meta.Contexts))
	for _, name := range meta.Contexts {
		var value string
		switch name {
		case domain.CacheContextURLPath:
			value = c.Request.URL.Path
		case domain.CacheContextURLQueryArgs:
			value = c.Request.URL.Query().Encode()
		case domain.CacheContextUserRoles:
			value = strings.Join(account.SortedRoles(), ",")
		}
		parts = append(parts, name+"="+value)
	}

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// serveCached writes a cached response for key and reports whether it did.
func (h *Handler) serveCached(c *gin.Context, key string, account *domain.Account) bool {
	if h.cache == nil {
		return false
	}

	cached, err := h.cache.Get(c.Request.Context(), key)
	if err != nil {
		log.WithError(err).Warn("response cache lookup failed")
		return false
	}
	if cached == nil {
		return false
	}

	writeCacheHeaders(c, cached.Metadata, account)
	c.Header(headerCacheStatus, "HIT")
	c.Data(cached.Status, contentTypeJSON, cached.Body)
	return true
}

// snapshotTags reads the versions of the tags guarding a response. It must run
// before the response's data is loaded; nil means the response is not stored.
func (h *Handler) snapshotTags(c *gin.Context, tags ...string) ports.TagVersions {
	if h.cache == nil {
		return nil
	}

	seen, err := h.cache.TagVersions(c.Request.Context(), tags...)
	if err != nil {
		log.WithError(err).Warn("response cache tag snapshot failed")
		return nil
	}
	return seen
}

// respondCacheable renders payload, stores it under key unless seen is nil,
// and writes it with its cacheability headers.
func (h *Handler) respondCacheable(c *gin.Context, key string, account *domain.Account, meta *domain.CacheableMetadata, payload any, seen ports.TagVersions) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("encode response failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if h.cache != nil && seen != nil {
		entry := &ports.CachedResponse{Status: http.StatusOK, Body: body, Metadata: meta}
		if err := h.cache.Set(c.Request.Context(), key, entry, seen); err != nil {
			log.WithError(err).Warn("response cache store failed")
		}
	}

	writeCacheHeaders(c, meta, account)
	c.Header(headerCacheStatus, "MISS")
	c.Data(http.StatusOK, contentTypeJSON, body)
}

func writeCacheHeaders(c *gin.Context, meta *domain.CacheableMetadata, account *domain.Account) {
	if meta == nil {
		return
	}

	c.Header(headerCacheContexts, strings.Join(meta.Contexts, " "))
	c.Header(headerCacheTags, strings.Join(meta.Tags, " "))
	c.Header("Vary", "Authorization")

	visibility := "public"
	if account.IsAuthenticated() {
		visibility = "private"
	}

	switch {
	case meta.MaxAge == 0:
		c.Header("Cache-Control", visibility+", no-cache")
	case meta.MaxAge > 0:
		c.Header("Cache-Control", fmt.Sprintf("%s, max-age=%d", visibility, meta.MaxAge))
	default:
		c.Header("Cache-Control", visibility)
	}
}
