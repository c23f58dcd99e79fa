package profile

import (
	"context"
	"errors"

	"github.com/kademe/manage-user/internal/permission"
)

// ErrProfileNotFound is returned when a profile update matches no row.
var ErrProfileNotFound = errors.New("profile not found")

// CleanupProcedure is the stored procedure that clears foreign-key references to a user.
const CleanupProcedure = "cleanup_user_references"

// AuditEntry is a row in the audit_log_entries table.
type AuditEntry struct {
	UserID       string         `json:"user_id"`
	UserFullName string         `json:"user_full_name,omitempty"`
	Action       string         `json:"action"`
	Details      map[string]any `json:"details,omitempty"`
	TableName    string         `json:"table_name"`
}

// Store provides operations on the profiles table and related procedures.
type Store interface {
	// ProfilePermissions returns the permissions column for userID, or a nil
	// claim and nil error when the user has no profile row.
	ProfilePermissions(ctx context.Context, userID string) (permission.Claim, error)
	UpdateProfilePermissions(ctx context.Context, userID string, claim permission.Claim) error
	CleanupUserReferences(ctx context.Context, userID string) error
	RecordAudit(ctx context.Context, entry AuditEntry) error
}
