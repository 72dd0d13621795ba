package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/andestravel/travel-requests/internal/core/domain"
	"github.com/andestravel/travel-requests/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

type stubOAuthProvider struct {
	exchangeFn func(ctx context.Context, code string) (string, error)
	profileFn  func(ctx context.Context, token string) (*ports.OAuthProfile, error)
}

func (p *stubOAuthProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	return p.exchangeFn(ctx, code)
}

func (p *stubOAuthProvider) FetchProfile(ctx context.Context, token string) (*ports.OAuthProfile, error) {
	return p.profileFn(ctx, token)
}

func (p *stubOAuthProvider) AuthorizeURL(state string) string {
	return "https://github.test/authorize?state=" + state
}

func newAuthService(repo *stubUserRepo, github ports.OAuthProvider) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", time.Hour)
	return NewAuthService(repo, tokens, github, zerolog.Nop()), tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:      "alice@example.com",
		Password:   "Passw0rd",
		Name:       "Alice",
		NationalID: "12.345.678-5",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected default client role, got %s", user.Role)
	}
	if user.NationalID != "12345678-5" {
		t.Fatalf("expected normalized national id, got %q", user.NationalID)
	}
	if user.PasswordHash == "Passw0rd" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Passw0rd")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_InvalidNationalID(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:      "bob@example.com",
		Password:   "Passw0rd",
		NationalID: "12345678-9",
	})
	if !errors.Is(err, domain.ErrInvalidNationalID) {
		t.Fatalf("expected ErrInvalidNationalID, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@example.com",
		Password: "Passw0rd",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	in := ports.RegisterInput{Email: "bob@example.com", Password: "Passw0rd"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthService(repo, nil)

	registered, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "carol@example.com",
		Password: "S3cretPw",
		Name:     "Carol",
		Role:     domain.RoleAgent,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "carol@example.com", "S3cretPw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if identity.ID != registered.ID || identity.Role != domain.RoleAgent || identity.Name != "Carol" {
		t.Fatalf("unexpected claims: %+v", identity)
	}
}

func TestAuthService_Login_SameErrorForBothFailures(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "dave@example.com",
		Password: "G00dPass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPassword := svc.Login(context.Background(), "dave@example.com", "BadPass1")
	_, _, noSuchUser := svc.Login(context.Background(), "ghost@example.com", "G00dPass")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(noSuchUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for missing user, got %v", noSuchUser)
	}
	if wrongPassword.Error() != noSuchUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword, noSuchUser)
	}
}

func TestAuthService_Login_OAuthOnlyAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	// OAuth-provisioned identities have no password hash; a password login
	// against them must fail like any bad credential.
	repo.users["gh1"] = &domain.User{ID: "gh1", Email: "octo@example.com", Role: domain.RoleClient}

	if _, _, err := svc.Login(context.Background(), "octo@example.com", "anything"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CurrentUser_Vanished(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	_, err := svc.CurrentUser(context.Background(), domain.Identity{ID: "gone", Role: domain.RoleClient})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ListClients_Projection(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo, nil)

	repo.users["c1"] = &domain.User{ID: "c1", Name: "Client One", Email: "c1@example.com", NationalID: "12345678-5", Role: domain.RoleClient, PasswordHash: "hash"}
	repo.users["a1"] = &domain.User{ID: "a1", Name: "Agent", Email: "a1@example.com", Role: domain.RoleAgent}

	clients, err := svc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("ListClients returned error: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if clients[0].ID != "c1" || clients[0].Name != "Client One" || clients[0].NationalID != "12345678-5" {
		t.Fatalf("unexpected projection: %+v", clients[0])
	}
}

func TestAuthService_LoginWithGitHub_ProvisionsNewUser(t *testing.T) {
	repo := newStubUserRepo()
	github := &stubOAuthProvider{
		exchangeFn: func(_ context.Context, code string) (string, error) {
			if code != "code-1" {
				t.Fatalf("unexpected code %q", code)
			}
			return "gh-token", nil
		},
		profileFn: func(_ context.Context, token string) (*ports.OAuthProfile, error) {
			if token != "gh-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return &ports.OAuthProfile{ID: 42, Login: "octocat", Name: "Octo Cat", Email: "octo@example.com", AvatarURL: "https://avatars.example/42"}, nil
		},
	}
	svc, tokens := newAuthService(repo, github)

	user, token, err := svc.LoginWithGitHub(context.Background(), "code-1")
	if err != nil {
		t.Fatalf("LoginWithGitHub returned error: %v", err)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected client role, got %s", user.Role)
	}
	if user.PasswordHash != "" {
		t.Fatalf("oauth user must not have a password hash")
	}
	if user.GitHubID != 42 || user.AvatarURL == "" {
		t.Fatalf("provider metadata not stored: %+v", user)
	}

	identity, err := tokens.Verify(token)
	if err != nil || identity.ID != user.ID {
		t.Fatalf("token does not match user: %v %+v", err, identity)
	}

	// Second login with the same profile must reuse the account.
	again, _, err := svc.LoginWithGitHub(context.Background(), "code-1")
	if err != nil {
		t.Fatalf("second LoginWithGitHub returned error: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("expected existing account to be reused")
	}
}

func TestAuthService_LoginWithGitHub_ExchangeFailure(t *testing.T) {
	repo := newStubUserRepo()
	github := &stubOAuthProvider{
		exchangeFn: func(_ context.Context, _ string) (string, error) {
			return "", domain.ErrOAuthExchange
		},
	}
	svc, _ := newAuthService(repo, github)

	if _, _, err := svc.LoginWithGitHub(context.Background(), "stale"); !errors.Is(err, domain.ErrOAuthExchange) {
		t.Fatalf("expected ErrOAuthExchange, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be provisioned on failure")
	}
}
