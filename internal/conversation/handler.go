// AngelaMos | 2026
// handler.go

package conversation

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/balansai/internal/middleware"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

type Handler struct {
	service *Service
	render  *web.Renderer
}

func NewHandler(service *Service, render *web.Renderer) *Handler {
	return &Handler{service: service, render: render}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/chat", h.Chat)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, session.UserLoginPath, http.StatusSeeOther)
		return
	}

	activeID, _ := strconv.ParseInt(web.Query(r, "c"), 10, 64)

	thread, err := h.service.Open(r.Context(), user.ID, activeID)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "dashboard/chat", "AI yordamchi", thread)
}
