// AngelaMos | 2026
// handler.go

package setting

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

const (
	msgUpdated  = "Sozlamalar yangilandi"
	msgBadForm  = "So'rov noto'g'ri"
	msgTooLong  = "Qiymat juda uzun"
	settingsURL = "/admin/settings"
)

type Handler struct {
	service *Service
	render  *web.Renderer
}

func NewHandler(service *Service, render *web.Renderer) *Handler {
	return &Handler{service: service, render: render}
}

// RegisterAdminRoutes mounts the settings form relative to /admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/settings", h.Page)
	r.Post("/settings", h.Update)
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.List(r.Context())
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}
	h.render.Render(w, r, "admin/settings", "Sozlamalar", settings)
}

// Update takes every field of the form as a setting key. Keys that do
// not exist yet are ignored.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.Redirect(w, r, settingsURL, session.FlashError, msgBadForm)
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		value := web.Form(r, key)
		if utf8.RuneCountInString(value) > MaxValueLength {
			web.Redirect(w, r, settingsURL, session.FlashError, msgTooLong+": "+key)
			return
		}
		values[strings.TrimSpace(key)] = value
	}

	if _, err := h.service.UpdateMany(r.Context(), values); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, settingsURL, session.FlashSuccess, msgUpdated)
}
