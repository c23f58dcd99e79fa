package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/kademe/manage-user/internal/identity"
	"github.com/kademe/manage-user/internal/profile"
)

// SessionVerifier resolves a caller's bearer token to a verified user.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*identity.User, error)
}

// UserAdmin performs privileged identity-provider mutations.
type UserAdmin interface {
	UpdateUser(ctx context.Context, userID string, attrs identity.UserAttributes) (*identity.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// Deps are the collaborators of a Service. Admin and Profiles are nil when the
// service-role key is not configured.
type Deps struct {
	Sessions SessionVerifier
	Admin    UserAdmin
	Profiles profile.Store
	// Resolver overrides the default permission resolver.
	Resolver *Resolver
}

// Options configure a Service.
type Options struct {
	SuperAdminEmail string
}

// Service runs the manage-user pipeline: authenticate, authorize, mutate.
type Service struct {
	superAdminEmail string
	sessions        SessionVerifier
	admin           UserAdmin
	profiles        profile.Store
	resolver        *Resolver
}

// NewService creates a new Service.
func NewService(opts Options, deps Deps) *Service {
	s := &Service{
		superAdminEmail: opts.SuperAdminEmail,
		sessions:        deps.Sessions,
		admin:           deps.Admin,
		profiles:        deps.Profiles,
		resolver:        deps.Resolver,
	}
	if s.resolver == nil && deps.Profiles != nil {
		s.resolver = DefaultResolver(opts.SuperAdminEmail, deps.Profiles)
	}
	return s
}

// Handle processes a single request. It never panics and never returns a
// result without a JSON body, except for pre-flight requests.
func (s *Service) Handle(ctx context.Context, req Request) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("manage-user panic recovered", "error", rec)
			res = failure(res.Action, &Error{Kind: KindUnexpected, Message: msgUnexpected})
		}
	}()

	if req.Method == http.MethodOptions {
		return Result{Status: http.StatusOK}
	}

	data, action, err := s.handle(ctx, req)
	if err != nil {
		return failure(action, err)
	}
	return Result{
		Status: http.StatusOK,
		Body:   SuccessBody{Success: true, Data: data},
		Action: action,
	}
}

func failure(action Action, err error) Result {
	var e *Error
	if !errors.As(err, &e) {
		slog.Error("manage-user unexpected error", "action", action, "error", err)
		e = &Error{Kind: KindUnexpected, Message: msgUnexpected}
	}
	switch e.Kind {
	case KindDownstream, KindUnexpected, KindConfiguration:
		slog.Error("manage-user request failed", "action", action, "error", e)
	default:
		slog.Info("manage-user request rejected", "action", action, "error", e.Message)
	}
	return Result{
		Status: e.Kind.Status(),
		Body:   ErrorBody{Error: e.Message},
		Action: action,
	}
}

func (s *Service) handle(ctx context.Context, req Request) (any, Action, error) {
	if req.Method != http.MethodPost {
		return nil, "", &Error{Kind: KindMethod, Message: msgMethodNotAllowed}
	}

	if s.sessions == nil || s.admin == nil || s.profiles == nil || s.resolver == nil {
		return nil, "", configError(msgConfiguration)
	}

	if strings.TrimSpace(req.Authorization) == "" {
		return nil, "", authnError(msgMissingAuthHeader, nil)
	}

	caller, err := s.authenticate(ctx, req.Authorization)
	if err != nil {
		return nil, "", err
	}

	if req.BodyErr != nil {
		return nil, "", bodyError(req.BodyErr)
	}

	var env envelope
	if err := decodeJSON(req.Body, &env); err != nil {
		return nil, "", validationError(msgInvalidBody)
	}

	if !env.Action.Known() {
		return nil, env.Action, validationError(fmt.Sprintf("Bilinmeyen action: %q", env.Action))
	}

	ok, source := s.resolver.Resolve(ctx, caller)
	if !ok {
		return nil, env.Action, authzError(deniedMessage(env.Action))
	}
	slog.Debug("manage-user caller authorized", "action", env.Action, "callerId", caller.ID, "source", source)

	var data any
	switch env.Action {
	case ActionUpdatePermissions:
		data, err = s.updatePermissions(ctx, caller, env)
	case ActionUpdatePassword:
		data, err = s.updatePassword(ctx, caller, env)
	case ActionDeleteUser:
		data, err = s.deleteUser(ctx, caller, env)
	}
	return data, env.Action, err
}

func (s *Service) authenticate(ctx context.Context, header string) (*identity.User, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, authnError(msgInvalidSession, errors.New("malformed authorization header"))
	}

	caller, err := s.sessions.VerifySession(ctx, token)
	if err != nil {
		// Outages surface as 401 like bad tokens; only the log tells them apart.
		if !errors.Is(err, identity.ErrInvalidSession) {
			slog.Warn("session verification failed", "error", err)
		}
		return nil, authnError(msgInvalidSession, err)
	}
	if caller == nil || caller.ID == "" {
		return nil, authnError(msgInvalidSession, nil)
	}
	return caller, nil
}

func (s *Service) updatePermissions(ctx context.Context, caller *identity.User, env envelope) (any, error) {
	if env.UserID == "" {
		return nil, validationError(msgUserIDRequired)
	}

	var p permissionsPayload
	if err := decodeJSON(env.Payload, &p); err != nil {
		return nil, validationError(msgInvalidBody)
	}
	if len(p.Permissions) == 0 {
		return nil, validationError(msgPermissionsRequired)
	}

	meta := make(map[string]any, len(p.UserMetadata)+1)
	for k, v := range p.UserMetadata {
		meta[k] = v
	}
	meta["permissions"] = p.Permissions

	updated, err := s.admin.UpdateUser(ctx, env.UserID, identity.UserAttributes{
		UserMetadata: meta,
		AppMetadata:  map[string]any{"permissions": p.Permissions},
	})
	if err != nil {
		return nil, downstreamError(msgIdentityUpdateFailed+err.Error(), err)
	}

	if err := s.profiles.UpdateProfilePermissions(ctx, env.UserID, p.Permissions); err != nil {
		return nil, downstreamError(msgProfileUpdateFailed+err.Error(), err)
	}

	s.audit(ctx, caller, auditPermissions, "profiles", map[string]any{
		"userId":         env.UserID,
		"newPermissions": p.Permissions,
	})

	return updated, nil
}

func (s *Service) updatePassword(ctx context.Context, caller *identity.User, env envelope) (any, error) {
	if env.UserID == "" {
		return nil, validationError(msgUserIDRequired)
	}

	var p passwordPayload
	if err := decodeJSON(env.Payload, &p); err != nil {
		return nil, validationError(msgInvalidBody)
	}
	if utf8.RuneCountInString(p.NewPassword) < MinPasswordLength {
		return nil, validationError(msgPasswordTooShort)
	}

	updated, err := s.admin.UpdateUser(ctx, env.UserID, identity.UserAttributes{Password: p.NewPassword})
	if err != nil {
		return nil, downstreamError(err.Error(), err)
	}

	s.audit(ctx, caller, auditPassword, "auth.users", map[string]any{"userId": env.UserID})

	return updated, nil
}

func (s *Service) deleteUser(ctx context.Context, caller *identity.User, env envelope) (any, error) {
	if env.UserID == "" {
		return nil, validationError(msgUserIDRequired)
	}

	var p deletePayload
	if err := decodeJSON(env.Payload, &p); err != nil {
		return nil, validationError(msgInvalidBody)
	}
	if isSuperAdmin(s.superAdminEmail, p.Email) {
		return nil, authzError(msgSuperAdminUndeletable)
	}

	tryNonFatal(ctx, profile.CleanupProcedure, func(ctx context.Context) error {
		return s.profiles.CleanupUserReferences(ctx, env.UserID)
	})

	if err := s.admin.DeleteUser(ctx, env.UserID); err != nil {
		return nil, downstreamError(msgDeleteFailed+err.Error(), err)
	}

	s.audit(ctx, caller, auditDelete, "auth.users", map[string]any{"userId": env.UserID})

	return nil, nil
}

func (s *Service) audit(ctx context.Context, caller *identity.User, action, table string, details map[string]any) {
	tryNonFatal(ctx, "audit_log_entries", func(ctx context.Context) error {
		return s.profiles.RecordAudit(ctx, profile.AuditEntry{
			UserID:       caller.ID,
			UserFullName: caller.FullName(),
			Action:       action,
			Details:      details,
			TableName:    table,
		})
	})
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	header = strings.TrimSpace(header)
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// decodeJSON treats an empty or null document as the zero value.
func decodeJSON(raw []byte, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func deniedMessage(a Action) string {
	switch a {
	case ActionDeleteUser:
		return msgDeniedDelete
	case ActionUpdatePassword:
		return msgDeniedPassword
	default:
		return msgDeniedPermissions
	}
}
