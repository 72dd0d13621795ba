package ports

import "context"

// OAuthProfile is the normalized provider profile used to provision or look
// up a local identity.
type OAuthProfile struct {
	ID        int64
	Login     string
	Name      string
	Email     string
	AvatarURL string
}

// OAuthProvider abstracts the external OAuth provider (GitHub).
type OAuthProvider interface {
	// ExchangeCode trades an authorization code for a provider access token.
	// Fails with domain.ErrOAuthConfig when client credentials are missing
	// and domain.ErrOAuthExchange on provider or network failure.
	ExchangeCode(ctx context.Context, code string) (string, error)
	// FetchProfile retrieves the authenticated profile, resolving a usable
	// email (profile email, primary verified address, or a synthesized
	// placeholder) before returning.
	FetchProfile(ctx context.Context, accessToken string) (*OAuthProfile, error)
	// AuthorizeURL builds the provider consent URL for the given state.
	AuthorizeURL(state string) string
}
