package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// AuthRepository is the credential store. FindByEmail returns
// domain.ErrUserNotFound when no user has the email; Create returns
// domain.ErrUserExists when the store's uniqueness constraint trips.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
