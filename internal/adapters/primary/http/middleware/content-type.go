package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"article-service/internal/core/domain"
)

// RequireJSON rejects request bodies that are not declared as application/json.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEJSON {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": domain.ErrUnsupportedContentType.Error()})
			return
		}
		c.Next()
	}
}
