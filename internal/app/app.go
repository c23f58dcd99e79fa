// Package app assembles the manage-user collaborators from configuration.
// Both the long-running server and the serverless entry point build through it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kademe/manage-user/internal/account"
	"github.com/kademe/manage-user/internal/config"
	"github.com/kademe/manage-user/internal/database"
	"github.com/kademe/manage-user/internal/identity"
	"github.com/kademe/manage-user/internal/profile"
)

// App is a configured account service plus the resources backing it.
type App struct {
	Service *account.Service
	// DB is nil unless DATABASE_URL is set and a service key is present.
	DB *database.DB
	// Configured reports whether the privileged collaborators were built.
	Configured bool
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Build creates the collaborators described by cfg. Privileged clients are only
// created when the service-role key is present; otherwise the service reports a
// configuration error on every request. Interface fields are assigned only from
// non-nil values so the service sees a true nil when a collaborator is missing.
func Build(ctx context.Context, cfg *config.Config, dbOpts ...database.Option) (*App, error) {
	hc := &http.Client{Timeout: cfg.HTTPClientTimeout}
	a := &App{}

	var deps account.Deps
	switch {
	case cfg.JWTSecret != "":
		// Claims are trusted until exp; revocation waits for token expiry.
		deps.Sessions = identity.NewJWTVerifier(cfg.JWTSecret)
	case cfg.AnonKey != "":
		deps.Sessions = identity.NewPublic(cfg.SupabaseURL, cfg.AnonKey, hc)
	default:
		slog.Warn("no session verifier configured; set SUPABASE_ANON_KEY or SUPABASE_JWT_SECRET")
	}

	if cfg.HasServiceKey() {
		deps.Admin = identity.NewAdmin(cfg.SupabaseURL, cfg.ServiceRoleKey, hc)

		if cfg.DatabaseURL != "" {
			db, err := database.New(ctx, cfg.DatabaseURL, dbOpts...)
			if err != nil {
				return nil, fmt.Errorf("connecting to database: %w", err)
			}
			a.DB = db
			deps.Profiles = profile.NewPostgresStore(db.Pool())
		} else {
			deps.Profiles = profile.NewRESTStore(cfg.SupabaseURL, cfg.ServiceRoleKey, hc)
		}
		a.Configured = deps.Sessions != nil
	} else {
		slog.Warn("SUPABASE_SERVICE_ROLE_KEY not set; manage-user will reject every request")
	}

	a.Service = account.NewService(account.Options{SuperAdminEmail: cfg.SuperAdminEmail}, deps)
	return a, nil
}
