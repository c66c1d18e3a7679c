package ports

import (
	"context"
	"time"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// PasswordHasher produces and checks one-way password digests.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	// Verify reports whether secret matches hash. A malformed hash is a
	// mismatch, not an error.
	Verify(secret, hash string) bool
}

// TokenIssuer mints signed credentials.
type TokenIssuer interface {
	Issue(subject string, role domain.Role) (string, error)
}

// TokenVerifier validates signed credentials. Errors are one of
// domain.ErrMalformedToken, domain.ErrInvalidSignature or domain.ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// TokenDenylist records revoked token ids until they would have expired
// anyway. A zero until means the entry never expires.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
