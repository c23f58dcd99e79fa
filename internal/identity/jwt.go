package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const authenticatedRole = "authenticated"

// AccessClaims are the claims GoTrue puts in an access token.
type AccessClaims struct {
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies access tokens locally against the project's JWT secret.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier creates a verifier for HS256 tokens signed with secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
			jwt.WithExpirationRequired(),
		),
	}
}

// VerifySession validates token and builds the User from its claims.
func (v *JWTVerifier) VerifySession(_ context.Context, token string) (*User, error) {
	var claims AccessClaims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if claims.Subject == "" || claims.Role != authenticatedRole {
		return nil, ErrInvalidSession
	}

	return &User{
		ID:           claims.Subject,
		Email:        claims.Email,
		Phone:        claims.Phone,
		Role:         claims.Role,
		UserMetadata: claims.UserMetadata,
		AppMetadata:  claims.AppMetadata,
	}, nil
}
