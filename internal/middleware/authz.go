package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/casbin/casbin/v2"
)

// Session keys written by the auth handlers and read here.
const (
	SessionKeySubject = "user_subject"
	SessionKeyRole    = "user_role"
)

// Authorizer creates a new middleware for authorization.
// It resolves the visitor's role from the server-side session and checks the
// request against the Casbin policy. There is no client-trusted admin flag;
// an expired or destroyed session degrades to the anonymous role.
func Authorizer(e *casbin.Enforcer, sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := sm.GetString(r.Context(), SessionKeySubject)
			role := sm.GetString(r.Context(), SessionKeyRole)
			if subject == "" {
				subject = "anonymous"
			}
			if role == "" {
				role = "anonymous"
			}

			// Add user info to the request context for downstream handlers.
			userInfo := &UserInfo{Subject: subject, Role: role}
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			// The policy is written in terms of roles, not subjects.
			allowed, err := e.Enforce(role, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
