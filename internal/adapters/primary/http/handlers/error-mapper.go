package handlers

import (
	"errors"
	"net/http"

	"article-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Access denied errors
	case errors.Is(err, domain.ErrAccessDenied),
		errors.Is(err, domain.ErrAuthenticationRequired),
		errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	// Not found errors
	case errors.Is(err, domain.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrMissingTitle),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrMissingBody),
		errors.Is(err, domain.ErrInvalidTextFormat),
		errors.Is(err, domain.ErrInvalidArticleID),
		errors.Is(err, domain.ErrEmptyPatch),
		errors.Is(err, domain.ErrUnsupportedContentType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
