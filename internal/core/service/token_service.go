package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andestravel/travel-requests/internal/core/domain"
)

// defaultTokenTTL is the session lifetime. The original deployment used a
// 24-hour expiry and nothing here needs anything shorter.
const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS256-signed bearer tokens carrying the
// identity claims (subject id, role, display name).
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity, expiring after the configured TTL.
func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":  identity.ID,
		"role": identity.Role,
		"name": identity.Name,
		"exp":  time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the embedded
// identity. Signature mismatch, wrong algorithm and expiry all collapse into
// domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	if sub == "" || role == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{ID: sub, Role: role, Name: name}, nil
}
