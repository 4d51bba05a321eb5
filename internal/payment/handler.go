// AngelaMos | 2026
// handler.go

package payment

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/balansai/internal/export"
	"github.com/carterperez-dev/balansai/internal/middleware"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

type Handler struct {
	service *Service
	render  *web.Renderer
	plans   []string
}

func NewHandler(service *Service, render *web.Renderer, plans []string) *Handler {
	return &Handler{service: service, render: render, plans: plans}
}

// RegisterRoutes mounts the signed-in user's payment history.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/payments", h.History)
}

// RegisterAdminRoutes mounts the revenue views relative to /admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/revenue", h.Revenue)
	r.Get("/revenue/export", h.Export)
}

type revenueView struct {
	Payments []Row
	Summary  *Summary
	Pager    web.Pager
	Search   string
	Plan     string
	Status   string
	Plans    []string
	Statuses []string
}

func listParams(r *http.Request) ListParams {
	return ListParams{
		Page:   web.QueryPage(r),
		Search: web.Query(r, "q"),
		Plan:   web.Query(r, "plan"),
		Status: web.Query(r, "status"),
	}
}

func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	page, summary, err := h.service.List(r.Context(), params)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "admin/revenue", "Daromadlar", revenueView{
		Payments: page.Items,
		Summary:  summary,
		Pager:    web.NewPager(r, page),
		Search:   params.Search,
		Plan:     params.Plan,
		Status:   params.Status,
		Plans:    h.plans,
		Statuses: Statuses,
	})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	out := export.NewResponse(w, "payments", time.Now())
	if rows, err := h.service.Export(r.Context(), params, out); err != nil {
		h.render.ExportError(w, r, out, rows, err)
	}
}

type historyView struct {
	Payments []Payment
	Pager    web.Pager
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, session.UserLoginPath, http.StatusSeeOther)
		return
	}

	page, err := h.service.History(r.Context(), user.ID, web.QueryPage(r))
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "dashboard/payments", "To'lovlar tarixi", historyView{
		Payments: page.Items,
		Pager:    web.NewPager(r, page),
	})
}
