package identity

import (
	"errors"
	"time"

	"github.com/kademe/manage-user/internal/permission"
)

// ErrInvalidSession is returned when a bearer token does not resolve to a user.
var ErrInvalidSession = errors.New("invalid or expired session")

// User is a GoTrue user record.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone,omitempty"`
	Role         string         `json:"role,omitempty"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
	LastSignInAt *time.Time     `json:"last_sign_in_at,omitempty"`
}

// UserPermissions returns the claim stored in user_metadata.
func (u *User) UserPermissions() permission.Claim {
	return permission.FromMetadata(u.UserMetadata)
}

// AppPermissions returns the claim stored in app_metadata.
func (u *User) AppPermissions() permission.Claim {
	return permission.FromMetadata(u.AppMetadata)
}

// FullName returns user_metadata.full_name when present.
func (u *User) FullName() string {
	s, _ := u.UserMetadata["full_name"].(string)
	return s
}

// UserAttributes is the body of an admin user update. Empty fields are left untouched.
type UserAttributes struct {
	Password     string         `json:"password,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	AppMetadata  map[string]any `json:"app_metadata,omitempty"`
}
