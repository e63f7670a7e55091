package auth

import (
	"log/slog"
	"net/http"

	internal "github.com/frahmantamala/hr-management/internal"
	coreuser "github.com/frahmantamala/hr-management/internal/core/user"
)

// RBACAuthorization gates endpoints on the role claims already attached to
// the request context by the auth middleware. The required role set per
// endpoint is enumerated explicitly at route registration.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequireRoles allows the request through when the caller holds at least one
// of the given roles. Missing principal means the auth middleware did not
// run, which is a 401, not a 403.
func (ra *RBACAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasAnyRole(roles) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", user.ID,
					"required_roles", roles,
					"user_roles", user.Roles)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(coreuser.RoleAdmin)
}
