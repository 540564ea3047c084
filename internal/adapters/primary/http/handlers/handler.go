package handlers

import (
	"article-service/internal/adapters/primary/http/dto"
	"article-service/internal/adapters/primary/http/middleware"
	"article-service/internal/core/ports/output"
	"article-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	articleSvc  *services.ArticleService
	cache       ports.ResponseCache
	cacheMaxAge int
}

// New builds the article handler. cache may be nil to disable response caching;
// cacheMaxAge is advertised in Cache-Control on GET responses.
func New(articleSvc *services.ArticleService, cache ports.ResponseCache, cacheMaxAge int) *Handler {
	dto.RegisterValidators()

	return &Handler{
		articleSvc:  articleSvc,
		cache:       cache,
		cacheMaxAge: cacheMaxAge,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	articles := r.Group("/articles")

	// Reads
	articles.GET("", h.ListArticles)
	articles.GET("/:id", h.GetArticle)

	// Writes (authenticated only)
	write := articles.Group("", middleware.RequireAuthenticated())
	write.POST("", middleware.RequireJSON(), h.CreateArticle)
	write.PUT("/:id", middleware.RequireJSON(), h.ReplaceArticle)
	write.PATCH("/:id", middleware.RequireJSON(), h.UpdateArticle)
	write.DELETE("/:id", h.DeleteArticle)
}
