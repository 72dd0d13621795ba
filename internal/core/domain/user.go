package domain

import (
	"errors"
	"time"
)

const (
	RoleAgent  = "agent"
	RoleClient = "client"
)

var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrInvalidNationalID = errors.New("invalid national id")
var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAgent || role == RoleClient
}

// User models an authenticated actor in the system.
//
// PasswordHash is empty for OAuth-provisioned identities and is never
// serialized. Users are only written by the registration and OAuth
// provisioning paths; there is no profile-update operation.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	Role         string    `json:"role" bson:"role"`
	NationalID   string    `json:"national_id,omitempty" bson:"national_id,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	GitHubID     int64     `json:"github_id,omitempty" bson:"github_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Identity is the verified token payload attached to a request after the
// auth middleware has validated the bearer token.
type Identity struct {
	ID   string
	Role string
	Name string
}

// IsAgent reports whether the identity carries the privileged agent role.
func (i Identity) IsAgent() bool {
	return i.Role == RoleAgent
}

// ClientSummary is the projection of a client user exposed to agents when
// linking trip requests. It deliberately excludes email and password hash.
type ClientSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
}
