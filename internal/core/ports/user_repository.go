package ports

import (
	"context"

	"github.com/andestravel/travel-requests/internal/core/domain"
)

// UserRepository defines persistence operations for user identities.
type UserRepository interface {
	// Create inserts a new user. A unique-index violation on email is
	// surfaced as domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
}
