// Package oauth implements the GitHub OAuth bridge: code exchange and
// profile normalization for the login-or-register flow.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/andestravel/travel-requests/internal/api/metrics"
	"github.com/andestravel/travel-requests/internal/core/domain"
	"github.com/andestravel/travel-requests/internal/core/ports"
	"github.com/andestravel/travel-requests/internal/pkg/config"
)

// requestTimeout bounds every call to GitHub so a stalled provider cannot
// hang a login indefinitely.
const requestTimeout = 10 * time.Second

// placeholderDomain is appended to the GitHub login when no usable email can
// be resolved for the account.
const placeholderDomain = "@github.com"

// GitHubClient talks to GitHub's OAuth and REST endpoints.
type GitHubClient struct {
	conf       *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewGitHubClient(cfg config.GitHubConfig, logger zerolog.Logger) *GitHubClient {
	return &GitHubClient{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBaseURL: "https://api.github.com",
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// AuthorizeURL builds the consent-page URL carrying the given state nonce.
func (c *GitHubClient) AuthorizeURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access token. Provider
// error payloads, non-success statuses and network failures all surface as
// domain.ErrOAuthExchange; missing credentials as domain.ErrOAuthConfig.
func (c *GitHubClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	if c.conf.ClientID == "" || c.conf.ClientSecret == "" {
		return "", domain.ErrOAuthConfig
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		metrics.OAuthExchangesTotal.WithLabelValues("failure").Inc()
		c.logger.Warn().Err(err).Msg("github code exchange failed")
		return "", fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}

	metrics.OAuthExchangesTotal.WithLabelValues("success").Inc()
	return token.AccessToken, nil
}

type githubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// FetchProfile retrieves the authenticated user and resolves a usable email:
// the public profile email, else the primary verified address from the
// emails endpoint, else a synthesized <login>@github.com placeholder.
func (c *GitHubClient) FetchProfile(ctx context.Context, accessToken string) (*ports.OAuthProfile, error) {
	var profile githubProfile
	if err := c.getJSON(ctx, accessToken, "/user", &profile); err != nil {
		return nil, err
	}

	email := profile.Email
	if email == "" {
		email = c.resolveEmail(ctx, accessToken)
	}
	if email == "" {
		email = profile.Login + placeholderDomain
	}

	return &ports.OAuthProfile{
		ID:        profile.ID,
		Login:     profile.Login,
		Name:      profile.Name,
		Email:     email,
		AvatarURL: profile.AvatarURL,
	}, nil
}

// resolveEmail queries the email-list endpoint for the primary verified
// address. Failures fall through to the placeholder rather than aborting the
// whole login.
func (c *GitHubClient) resolveEmail(ctx context.Context, accessToken string) string {
	var emails []githubEmail
	if err := c.getJSON(ctx, accessToken, "/user/emails", &emails); err != nil {
		c.logger.Warn().Err(err).Msg("github email lookup failed")
		return ""
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}

func (c *GitHubClient) getJSON(ctx context.Context, accessToken, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOAuthExchange, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: github api returned %d for %s", domain.ErrOAuthExchange, resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrOAuthExchange, path, err)
	}
	return nil
}
