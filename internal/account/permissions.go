package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kademe/manage-user/internal/identity"
	"github.com/kademe/manage-user/internal/permission"
	"github.com/kademe/manage-user/internal/profile"
)

// Source answers whether a caller holds full settings access.
type Source struct {
	Name  string
	Check func(ctx context.Context, caller *identity.User) (bool, error)
}

// Resolver walks its sources in order and grants on the first positive answer.
// A source that fails is logged and treated as a negative answer.
type Resolver struct {
	sources []Source
}

// NewResolver creates a Resolver over the given sources.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// DefaultResolver checks, in order: the super admin email, the profiles row,
// the caller's user_metadata and the caller's app_metadata.
func DefaultResolver(superAdminEmail string, store profile.Store) *Resolver {
	return NewResolver(
		SuperAdminSource(superAdminEmail),
		ProfileSource(store),
		UserMetadataSource(),
		AppMetadataSource(),
	)
}

// Resolve reports whether caller is privileged and which source granted it.
func (r *Resolver) Resolve(ctx context.Context, caller *identity.User) (bool, string) {
	for _, src := range r.sources {
		ok, err := src.Check(ctx, caller)
		if err != nil {
			slog.Warn("permission source failed", "source", src.Name, "userId", caller.ID, "error", err)
			continue
		}
		if ok {
			return true, src.Name
		}
	}
	return false, ""
}

// SuperAdminSource grants when the caller's email equals email.
func SuperAdminSource(email string) Source {
	return Source{
		Name: "super_admin",
		Check: func(_ context.Context, caller *identity.User) (bool, error) {
			return isSuperAdmin(email, caller.Email), nil
		},
	}
}

// ProfileSource grants when profiles.permissions has settings=full.
// A missing row is a negative answer.
func ProfileSource(store profile.Store) Source {
	return Source{
		Name: "profile",
		Check: func(ctx context.Context, caller *identity.User) (bool, error) {
			claim, err := store.ProfilePermissions(ctx, caller.ID)
			if err != nil {
				return false, err
			}
			return claim.HasFull(permission.ModuleSettings), nil
		},
	}
}

// UserMetadataSource grants when user_metadata.permissions has settings=full.
func UserMetadataSource() Source {
	return Source{
		Name: "user_metadata",
		Check: func(_ context.Context, caller *identity.User) (bool, error) {
			return caller.UserPermissions().HasFull(permission.ModuleSettings), nil
		},
	}
}

// AppMetadataSource grants when app_metadata.permissions has settings=full.
func AppMetadataSource() Source {
	return Source{
		Name: "app_metadata",
		Check: func(_ context.Context, caller *identity.User) (bool, error) {
			return caller.AppPermissions().HasFull(permission.ModuleSettings), nil
		},
	}
}

func isSuperAdmin(superAdminEmail, email string) bool {
	if superAdminEmail == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(superAdminEmail))
}
