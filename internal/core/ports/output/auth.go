package ports

import (
	"context"

	"article-service/internal/core/domain"
)

// TokenVerifier resolves a bearer credential to the account it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Account, error)
}
