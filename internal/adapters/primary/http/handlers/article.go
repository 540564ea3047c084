package handlers

import (
	"net/http"
	"strconv"

	"article-service/internal/adapters/primary/http/dto"
	"article-service/internal/adapters/primary/http/middleware"
	"article-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListArticles(c *gin.Context) {
	account := middleware.CurrentAccount(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	meta := h.newCacheability().
		AddCacheContexts(domain.CacheContextURLQueryArgs).
		AddCacheTags(domain.CacheTagNodeList)
	key := cacheKey(c, account, meta)
	if h.serveCached(c, key, account) {
		return
	}
	// Every node write also invalidates node_list.
	seen := h.snapshotTags(c, domain.CacheTagNodeList)

	nodes, total, err := h.articleSvc.List(c.Request.Context(), account, limit, offset)
	if err != nil {
		log.WithError(err).Error("list articles failed")
		mapDomainError(c, err)
		return
	}

	for _, n := range nodes {
		meta.AddNode(n)
	}

	h.respondCacheable(c, key, account, meta, dto.ToListArticlesResponse(nodes, total), seen)
}

func (h *Handler) GetArticle(c *gin.Context) {
	id, err := parseArticleID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	account := middleware.CurrentAccount(c)

	meta := h.newCacheability()
	key := cacheKey(c, account, meta)
	if h.serveCached(c, key, account) {
		return
	}
	seen := h.snapshotTags(c, domain.NodeCacheTag(id))

	node, err := h.articleSvc.Get(c.Request.Context(), account, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	meta.AddNode(node)
	h.respondCacheable(c, key, account, meta, dto.ToArticleResponse(node), seen)
}

func (h *Handler) CreateArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node, err := h.articleSvc.Create(c.Request.Context(), middleware.CurrentAccount(c), req.ToInput())
	if err != nil {
		log.WithError(err).Error("create article failed")
		mapDomainError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+strconv.FormatInt(node.ID, 10))
	c.JSON(http.StatusCreated, dto.ToArticleResponse(node))
}

func (h *Handler) ReplaceArticle(c *gin.Context) {
	id, err := parseArticleID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node, err := h.articleSvc.Replace(c.Request.Context(), middleware.CurrentAccount(c), id, req.ToInput())
	if err != nil {
		log.WithError(err).Error("replace article failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArticleResponse(node))
}

func (h *Handler) UpdateArticle(c *gin.Context) {
	id, err := parseArticleID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	node, err := h.articleSvc.Update(c.Request.Context(), middleware.CurrentAccount(c), id, req.ToPatch())
	if err != nil {
		log.WithError(err).Error("update article failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArticleResponse(node))
}

func (h *Handler) DeleteArticle(c *gin.Context) {
	id, err := parseArticleID(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	if err := h.articleSvc.Delete(c.Request.Context(), middleware.CurrentAccount(c), id); err != nil {
		log.WithError(err).Error("delete article failed")
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseArticleID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidArticleID
	}
	return id, nil
}
