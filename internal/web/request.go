// AngelaMos | 2026
// request.go

package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/session"
)

// Redirect records a flash notice and answers 303 to target.
func Redirect(w http.ResponseWriter, r *http.Request, target, category, message string) {
	if message != "" {
		s := session.FromContext(r.Context())
		if err := s.AddFlash(r.Context(), category, message); err != nil {
			slog.Warn("add flash", "error", err, "target", target)
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// QueryPage reads ?page, defaulting to 1 for anything missing or invalid
// and capping at core.MaxPage.
func QueryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return min(page, core.MaxPage)
}

func Query(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

func Form(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// FormBool reads a checkbox.
func FormBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.PostFormValue(key)) {
	case "on", "1", "true", "yes":
		return true
	default:
		return false
	}
}

// PathID parses a positive integer route parameter.
func PathID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
