package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kademe/manage-user/internal/permission"
	"github.com/kademe/manage-user/internal/supabase"
)

// RESTStore implements Store over PostgREST using the service-role key.
type RESTStore struct {
	api *supabase.Client
}

// NewRESTStore creates a Store backed by the project's REST API.
func NewRESTStore(baseURL, serviceKey string, hc *http.Client) Store {
	return &RESTStore{api: supabase.NewClient(baseURL, serviceKey, supabase.WithHTTPClient(hc))}
}

type permissionsRow struct {
	Permissions permission.Claim `json:"permissions"`
}

// ProfilePermissions reads profiles.permissions for userID.
func (s *RESTStore) ProfilePermissions(ctx context.Context, userID string) (permission.Claim, error) {
	var rows []permissionsRow
	err := s.api.Do(ctx, supabase.Request{
		Method: http.MethodGet,
		Path:   "/rest/v1/profiles",
		Query: url.Values{
			"select": {"permissions"},
			"id":     {"eq." + userID},
		},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].Permissions, nil
}

// UpdateProfilePermissions overwrites profiles.permissions for userID.
func (s *RESTStore) UpdateProfilePermissions(ctx context.Context, userID string, claim permission.Claim) error {
	var rows []struct {
		ID string `json:"id"`
	}
	err := s.api.Do(ctx, supabase.Request{
		Method: http.MethodPatch,
		Path:   "/rest/v1/profiles",
		Query: url.Values{
			"select": {"id"},
			"id":     {"eq." + userID},
		},
		Header: http.Header{"Prefer": {"return=representation"}},
		Body:   permissionsRow{Permissions: claim},
	}, &rows)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if len(rows) == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// CleanupUserReferences calls the cleanup procedure for userID.
func (s *RESTStore) CleanupUserReferences(ctx context.Context, userID string) error {
	err := s.api.Do(ctx, supabase.Request{
		Method: http.MethodPost,
		Path:   "/rest/v1/rpc/" + CleanupProcedure,
		Body:   map[string]string{"target_user_id": userID},
	}, nil)
	if err != nil {
		return fmt.Errorf("calling %s: %w", CleanupProcedure, err)
	}
	return nil
}

// RecordAudit inserts an audit_log_entries row.
func (s *RESTStore) RecordAudit(ctx context.Context, entry AuditEntry) error {
	err := s.api.Do(ctx, supabase.Request{
		Method: http.MethodPost,
		Path:   "/rest/v1/audit_log_entries",
		Header: http.Header{"Prefer": {"return=minimal"}},
		Body:   entry,
	}, nil)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}
