package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"
)

const accountKey = "account"

// Authenticate resolves the request account. Requests without an
// Authorization header run as the anonymous account; a header that does not
// verify is rejected.
func Authenticate(verifier ports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || verifier == nil {
			c.Set(accountKey, domain.AnonymousAccount())
			c.Next()
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrInvalidToken.Error()})
			return
		}

		account, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Debug("bearer token rejected")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrInvalidToken.Error()})
			return
		}

		c.Set(accountKey, account)
		c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests before the handler runs.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentAccount(c).IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrAuthenticationRequired.Error()})
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account set by Authenticate, or anonymous.
func CurrentAccount(c *gin.Context) *domain.Account {
	if v, ok := c.Get(accountKey); ok {
		if account, ok := v.(*domain.Account); ok && account != nil {
			return account
		}
	}
	return domain.AnonymousAccount()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
