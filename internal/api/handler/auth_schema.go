package handler

import "github.com/andestravel/travel-requests/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,password"`
	Name       string `json:"name"`
	Role       string `json:"role"        validate:"omitempty,oneof=agent client"`
	NationalID string `json:"national_id"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type githubCallbackRequest struct {
	Code  string `json:"code"  query:"code"`
	State string `json:"state" query:"state"`
}

type authResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}
