package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kademe/manage-user/internal/supabase"
)

// Public verifies caller sessions with the anonymous project key. It holds no
// caller state; every verification builds its own token-scoped client.
type Public struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewPublic creates a session verifier for the project at baseURL.
func NewPublic(baseURL, anonKey string, hc *http.Client) *Public {
	return &Public{baseURL: baseURL, anonKey: anonKey, http: hc}
}

// Session returns a client scoped to a single caller's access token.
func (p *Public) Session(token string) *SessionClient {
	return &SessionClient{
		api: supabase.NewClient(p.baseURL, p.anonKey,
			supabase.WithBearer(token),
			supabase.WithHTTPClient(p.http),
		),
	}
}

// VerifySession resolves token to the user that owns it.
func (p *Public) VerifySession(ctx context.Context, token string) (*User, error) {
	return p.Session(token).User(ctx)
}

// SessionClient calls GoTrue on behalf of one caller.
type SessionClient struct {
	api *supabase.Client
}

// User fetches the caller's own user record. Token rejections map to ErrInvalidSession.
func (s *SessionClient) User(ctx context.Context) (*User, error) {
	var u User
	err := s.api.Do(ctx, supabase.Request{Method: http.MethodGet, Path: "/auth/v1/user"}, &u)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSession, apiErr.Message)
		}
		return nil, fmt.Errorf("fetching session user: %w", err)
	}
	if u.ID == "" {
		return nil, ErrInvalidSession
	}
	return &u, nil
}

// Admin performs privileged user mutations with the service-role key.
type Admin struct {
	api *supabase.Client
}

// NewAdmin creates an admin client. serviceKey must be the service-role key.
func NewAdmin(baseURL, serviceKey string, hc *http.Client) *Admin {
	return &Admin{api: supabase.NewClient(baseURL, serviceKey, supabase.WithHTTPClient(hc))}
}

// UpdateUser applies attrs to the user with the given id and returns the updated record.
func (a *Admin) UpdateUser(ctx context.Context, userID string, attrs UserAttributes) (*User, error) {
	var u User
	err := a.api.Do(ctx, supabase.Request{
		Method: http.MethodPut,
		Path:   "/auth/v1/admin/users/" + url.PathEscape(userID),
		Body:   attrs,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser hard-deletes the user with the given id.
func (a *Admin) DeleteUser(ctx context.Context, userID string) error {
	return a.api.Do(ctx, supabase.Request{
		Method: http.MethodDelete,
		Path:   "/auth/v1/admin/users/" + url.PathEscape(userID),
	}, nil)
}
