// AngelaMos | 2026
// handler.go

package contact

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/export"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

const (
	msgSent     = "Xabaringiz muvaffaqiyatli yuborildi!"
	msgBadForm  = "So'rov noto'g'ri"
	contactPath = "/contact"
)

type Handler struct {
	service   *Service
	render    *web.Renderer
	validator *validator.Validate
}

func NewHandler(service *Service, render *web.Renderer) *Handler {
	return &Handler{
		service:   service,
		render:    render,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes mounts the public contact form. limit guards the POST.
func (h *Handler) RegisterRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get(contactPath, h.Page)
	r.With(limit).Post(contactPath, h.Submit)
}

// RegisterAdminRoutes mounts the inbox relative to /admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.AdminList)
		r.Get("/export", h.AdminExport)
		r.Post("/{id}/read", h.MarkRead)
		r.Delete("/{id}/delete", h.Delete)
		r.Post("/{id}/delete", h.Delete)
	})
}

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "pages/contact", "Aloqa", nil)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.Redirect(w, r, contactPath, session.FlashError, msgBadForm)
		return
	}

	req := CreateRequest{
		Name:    web.Form(r, "name"),
		Email:   web.Form(r, "email"),
		Message: web.Form(r, "message"),
	}

	if err := h.validator.Struct(req); err != nil {
		web.Redirect(w, r, contactPath, session.FlashError, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.Submit(r.Context(), req); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, contactPath, session.FlashSuccess, msgSent)
}

type inboxView struct {
	Contacts []Contact
	Unread   int
	Pager    web.Pager
	Search   string
	Status   string
	Statuses []string
}

func listParams(r *http.Request) ListParams {
	return ListParams{
		Page:   web.QueryPage(r),
		Search: web.Query(r, "q"),
		Status: web.Query(r, "status"),
	}
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	unread, err := h.service.CountUnread(r.Context())
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "admin/contacts", "Xabarlar", inboxView{
		Contacts: page.Items,
		Unread:   unread,
		Pager:    web.NewPager(r, page),
		Search:   params.Search,
		Status:   params.Status,
		Statuses: Statuses,
	})
}

func (h *Handler) AdminExport(w http.ResponseWriter, r *http.Request) {
	out := export.NewResponse(w, "contacts", time.Now())
	if rows, err := h.service.Export(r.Context(), listParams(r), out); err != nil {
		h.render.ExportError(w, r, out, rows, err)
	}
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.jsonAction(w, r, h.service.MarkRead)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.jsonAction(w, r, h.service.Delete)
}

func (h *Handler) jsonAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, id int64) error,
) {
	id, ok := web.PathID(r, "id")
	if !ok {
		core.NotFoundJSON(w, "contact")
		return
	}

	if err := action(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFoundJSON(w, "contact")
			return
		}
		core.SetSpanError(r.Context(), err)
		core.InternalServerErrorJSON(w, err)
		return
	}

	core.Success(w)
}
