package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kademe/manage-user/internal/permission"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &PostgresStore{pool: pool}
}

// ProfilePermissions reads profiles.permissions for userID.
func (s *PostgresStore) ProfilePermissions(ctx context.Context, userID string) (permission.Claim, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT permissions FROM public.profiles WHERE id = $1`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	if len(raw) == 0 {
		return nil, nil
	}
	var claim permission.Claim
	if err := json.Unmarshal(raw, &claim); err != nil {
		return nil, fmt.Errorf("decoding profile permissions: %w", err)
	}
	return claim, nil
}

// UpdateProfilePermissions overwrites profiles.permissions for userID.
func (s *PostgresStore) UpdateProfilePermissions(ctx context.Context, userID string, claim permission.Claim) error {
	b, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("encoding permissions: %w", err)
	}

	result, err := s.pool.Exec(ctx,
		`UPDATE public.profiles SET permissions = $2::jsonb WHERE id = $1`, userID, string(b),
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// CleanupUserReferences calls the cleanup procedure for userID.
func (s *PostgresStore) CleanupUserReferences(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `SELECT public.`+CleanupProcedure+`(target_user_id => $1)`, userID)
	if err != nil {
		return fmt.Errorf("calling %s: %w", CleanupProcedure, err)
	}
	return nil
}

// RecordAudit inserts an audit_log_entries row.
func (s *PostgresStore) RecordAudit(ctx context.Context, entry AuditEntry) error {
	var details []byte
	if entry.Details != nil {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("encoding audit details: %w", err)
		}
		details = b
	}

	query := `
		INSERT INTO public.audit_log_entries (user_id, user_full_name, action, details, table_name)
		VALUES ($1, NULLIF($2, ''), $3, $4::jsonb, $5)`

	var detailsArg any
	if details != nil {
		detailsArg = string(details)
	}

	_, err := s.pool.Exec(ctx, query,
		entry.UserID,
		entry.UserFullName,
		entry.Action,
		detailsArg,
		entry.TableName,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}
