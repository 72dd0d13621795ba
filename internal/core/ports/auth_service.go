package ports

import (
	"context"

	"github.com/andestravel/travel-requests/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration time.
type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Role       string
	NationalID string
}

// AuthService defines the authentication use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns the authenticated user and a signed bearer token. A
	// missing user and a wrong password produce the same
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// CurrentUser resolves the token identity back to its stored profile.
	CurrentUser(ctx context.Context, identity domain.Identity) (*domain.User, error)
	ListClients(ctx context.Context) ([]domain.ClientSummary, error)
	// LoginWithGitHub exchanges an OAuth authorization code, provisioning a
	// local client identity on first sight.
	LoginWithGitHub(ctx context.Context, code string) (*domain.User, string, error)
}
