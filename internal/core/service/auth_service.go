package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/andestravel/travel-requests/internal/api/metrics"
	"github.com/andestravel/travel-requests/internal/core/domain"
	"github.com/andestravel/travel-requests/internal/core/ports"
	"github.com/andestravel/travel-requests/internal/pkg/rut"
)

// bcryptCost matches the work factor the original deployment hashed with.
const bcryptCost = 10

// AuthService implements registration, login, client listing and the GitHub
// OAuth flow.
type AuthService struct {
	users  ports.UserRepository
	tokens *TokenService
	github ports.OAuthProvider
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, github ports.OAuthProvider, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, github: github, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	nationalID := ""
	if in.NationalID != "" {
		result := rut.Validate(in.NationalID)
		if !result.Valid {
			return nil, domain.ErrInvalidNationalID
		}
		nationalID = result.Formatted
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		NationalID:   nationalID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("local").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same failure as a wrong password so callers cannot probe
			// which emails are registered.
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{ID: user.ID, Role: user.Role, Name: user.Name})
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("login")
	return user, token, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, identity.ID)
}

// ListClients returns every client-role user projected down to the fields
// agents need when linking a request. Emails and hashes never leave here.
func (s *AuthService) ListClients(ctx context.Context) ([]domain.ClientSummary, error) {
	users, err := s.users.ListByRole(ctx, domain.RoleClient)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.ClientSummary, 0, len(users))
	for _, u := range users {
		clients = append(clients, domain.ClientSummary{
			ID:         u.ID,
			Name:       u.Name,
			NationalID: u.NationalID,
		})
	}
	return clients, nil
}

// LoginWithGitHub exchanges the authorization code, resolves the provider
// profile to a local identity (provisioning one on first sight) and issues a
// session token.
func (s *AuthService) LoginWithGitHub(ctx context.Context, code string) (*domain.User, string, error) {
	accessToken, err := s.github.ExchangeCode(ctx, code)
	if err != nil {
		return nil, "", err
	}

	profile, err := s.github.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		// Existing account, local or OAuth-provisioned: log in as-is.
	case errors.Is(err, domain.ErrUserNotFound):
		name := profile.Name
		if name == "" {
			name = profile.Login
		}
		user = &domain.User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     profile.Email,
			Role:      domain.RoleClient,
			AvatarURL: profile.AvatarURL,
			GitHubID:  profile.ID,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", err
		}
		metrics.RegistrationsTotal.WithLabelValues("github").Inc()
		s.logger.Info().Str("user_id", user.ID).Int64("github_id", profile.ID).Msg("github user provisioned")
	default:
		return nil, "", err
	}

	token, err := s.tokens.Issue(domain.Identity{ID: user.ID, Role: user.Role, Name: user.Name})
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, token, nil
}
