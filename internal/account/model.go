package account

import (
	"encoding/json"

	"github.com/kademe/manage-user/internal/permission"
)

// Action names a requested mutation.
type Action string

const (
	ActionUpdatePermissions Action = "update_permissions"
	ActionUpdatePassword    Action = "update_password"
	ActionDeleteUser        Action = "delete_user"
)

// Known reports whether a is one of the supported actions.
func (a Action) Known() bool {
	switch a {
	case ActionUpdatePermissions, ActionUpdatePassword, ActionDeleteUser:
		return true
	}
	return false
}

// MinPasswordLength is the minimum number of characters in a new password.
// Characters are Unicode code points, not UTF-16 units as in the browser's
// String.length, so a password of three emoji is rejected here.
const MinPasswordLength = 6

// Request is a transport-neutral manage-user invocation.
type Request struct {
	Method        string
	Authorization string
	Body          []byte
	// BodyErr is a failure reading Body. It is reported only after the caller
	// has been authenticated.
	BodyErr error
}

// Result is the outcome of one invocation. A nil Body marks a pre-flight reply.
type Result struct {
	Status int
	Body   any
	Action Action
}

// SuccessBody is the JSON body of a successful mutation.
type SuccessBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorBody is the JSON body of every failure.
type ErrorBody struct {
	Error string `json:"error"`
}

type envelope struct {
	Action  Action          `json:"action"`
	UserID  string          `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

type permissionsPayload struct {
	Permissions  permission.Claim `json:"permissions"`
	UserMetadata map[string]any   `json:"user_metadata"`
}

type passwordPayload struct {
	NewPassword string `json:"newPassword"`
}

type deletePayload struct {
	Email string `json:"email"`
}
