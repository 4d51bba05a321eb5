// AngelaMos | 2026
// auth.go

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/balansai/internal/session"
)

const LoginRequiredMessage = "Iltimos, avval tizimga kiring"

// RequireUser admits only signed-in end users.
func RequireUser(next http.Handler) http.Handler {
	return requireRole(session.RoleUser)(next)
}

// RequireAdmin admits only the admin principal.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(session.RoleAdmin)(next)
}

func requireRole(role session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromContext(r.Context())

			allowed, target := session.Require(s.Principal(), role)
			if allowed {
				next.ServeHTTP(w, r)
				return
			}

			if err := s.AddFlash(r.Context(), session.FlashError, LoginRequiredMessage); err != nil {
				slog.Warn("flash on guard redirect failed",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
			}

			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}

// CurrentUser returns the signed-in user, if any.
func CurrentUser(r *http.Request) (session.UserIdentity, bool) {
	return session.FromContext(r.Context()).Principal().User()
}
