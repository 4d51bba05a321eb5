// AngelaMos | 2026
// handler.go

package testimonial

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

const (
	msgCreated     = "Fikr qo'shildi"
	msgUpdated     = "Fikr yangilandi"
	msgDeleted     = "Fikr o'chirildi"
	msgShown       = "Fikr saytda ko'rsatiladi"
	msgHidden      = "Fikr saytdan yashirildi"
	msgNotFound    = "Fikr topilmadi"
	msgBadForm     = "So'rov noto'g'ri"
	msgBadNumber   = "Baho va tartib raqam bo'lishi kerak"
	testimonialsAt = "/admin/testimonials"
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

// RegisterAdminRoutes mounts testimonial management relative to /admin.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/new", h.NewPage)
		r.Post("/new", h.Create)
		r.Get("/{id}", h.EditPage)
		r.Post("/{id}", h.Update)
		r.Post("/{id}/toggle", h.Toggle)
		r.Post("/{id}/delete", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}
	h.render.Render(w, r, "admin/testimonials", "Fikrlar", items)
}

type formView struct {
	Testimonial *Testimonial
	Action      string
}

func (h *Handler) NewPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "admin/testimonial_form", "Yangi fikr", formView{
		Testimonial: &Testimonial{Rating: MaxRating, IsActive: true},
		Action:      testimonialsAt + "/new",
	})
}

func (h *Handler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, testimonialsAt, session.FlashError, msgNotFound)
		return
	}

	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.adminError(w, r, err)
		return
	}

	h.render.Render(w, r, "admin/testimonial_form", t.Name, formView{
		Testimonial: t,
		Action:      testimonialsAt + "/" + strconv.FormatInt(t.ID, 10),
	})
}

// bind returns the flash message to show when the form is unusable.
func (h *Handler) bind(r *http.Request) (Request, string) {
	if err := r.ParseForm(); err != nil {
		return Request{}, msgBadForm
	}

	rating, err := strconv.Atoi(web.Form(r, "rating"))
	if err != nil {
		return Request{}, msgBadNumber
	}

	order := 0
	if raw := web.Form(r, "display_order"); raw != "" {
		if order, err = strconv.Atoi(raw); err != nil {
			return Request{}, msgBadNumber
		}
	}

	req := Request{
		Name:         web.Form(r, "name"),
		Position:     web.Form(r, "position"),
		Company:      web.Form(r, "company"),
		Content:      web.Form(r, "content"),
		Rating:       rating,
		DisplayOrder: order,
		IsActive:     web.FormBool(r, "is_active"),
	}

	if err := h.validator.Struct(req); err != nil {
		return Request{}, core.FormatValidationError(err)
	}

	return req, ""
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, problem := h.bind(r)
	if problem != "" {
		web.Redirect(w, r, testimonialsAt+"/new", session.FlashError, problem)
		return
	}

	if _, err := h.service.Create(r.Context(), req); err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	web.Redirect(w, r, testimonialsAt, session.FlashSuccess, msgCreated)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, testimonialsAt, session.FlashError, msgNotFound)
		return
	}

	req, problem := h.bind(r)
	if problem != "" {
		web.Redirect(w, r, testimonialsAt+"/"+strconv.FormatInt(id, 10), session.FlashError, problem)
		return
	}

	if _, err := h.service.Update(r.Context(), id, req); err != nil {
		h.adminError(w, r, err)
		return
	}

	web.Redirect(w, r, testimonialsAt, session.FlashSuccess, msgUpdated)
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, testimonialsAt, session.FlashError, msgNotFound)
		return
	}

	active, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		h.adminError(w, r, err)
		return
	}

	msg := msgHidden
	if active {
		msg = msgShown
	}
	web.Redirect(w, r, testimonialsAt, session.FlashSuccess, msg)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.PathID(r, "id")
	if !ok {
		web.Redirect(w, r, testimonialsAt, session.FlashError, msgNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.adminError(w, r, err)
		return
	}

	web.Redirect(w, r, testimonialsAt, session.FlashSuccess, msgDeleted)
}

func (h *Handler) adminError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrNotFound) {
		web.Redirect(w, r, testimonialsAt, session.FlashError, msgNotFound)
		return
	}
	h.render.ServerError(w, r, err)
}
