package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andestravel/travel-requests/internal/core/ports"
)

// StateStore issues and redeems one-time OAuth state nonces.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
}

// AuthHandler handles registration, login, profile and OAuth endpoints.
type AuthHandler struct {
	authService ports.AuthService
	github      ports.OAuthProvider
	states      StateStore
}

func NewAuthHandler(authService ports.AuthService, github ports.OAuthProvider, states StateStore) *AuthHandler {
	return &AuthHandler{authService: authService, github: github, states: states}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Role:       req.Role,
		NationalID: req.NationalID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{Message: "user registered", User: user})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Message: "login successful", User: user, Token: token})
}

// Me returns the profile behind the presented token.
//
// @Summary      Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{User: user})
}

// Clients lists client-role users for agents linking trip requests.
//
// @Summary      List registered clients
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ClientSummary
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/clients [get]
func (h *AuthHandler) Clients(c echo.Context) error {
	clients, err := h.authService.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// GitHubLogin redirects the browser to GitHub's consent page with a
// one-time state nonce.
//
// @Summary      Start the GitHub OAuth flow
// @Tags         auth
// @Success      302
// @Router       /api/auth/github/login [get]
func (h *AuthHandler) GitHubLogin(c echo.Context) error {
	state, err := h.states.Issue(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.github.AuthorizeURL(state))
}

// GitHubCallback completes the OAuth flow: validates the state when one is
// supplied, exchanges the code and logs the resolved user in.
//
// @Summary      GitHub OAuth callback
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        code  query     string  true   "Authorization code"
// @Param        state query     string  false  "State nonce from /github/login"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/auth/github/callback [get]
func (h *AuthHandler) GitHubCallback(c echo.Context) error {
	var req githubCallbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	// State is optional so SPA-driven flows that post only the code keep
	// working; when present it must match an issued nonce.
	if req.State != "" {
		ok, err := h.states.Consume(c.Request().Context(), req.State)
		if err != nil {
			return err
		}
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown oauth state")
		}
	}

	user, token, err := h.authService.LoginWithGitHub(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
