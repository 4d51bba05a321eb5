// AngelaMos | 2026
// handler.go

package pages

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/balansai/internal/testimonial"
	"github.com/carterperez-dev/balansai/internal/web"
)

type TestimonialSource interface {
	Featured(ctx context.Context) ([]testimonial.Testimonial, error)
}

type Handler struct {
	testimonials TestimonialSource
	render       *web.Renderer
}

func NewHandler(testimonials TestimonialSource, render *web.Renderer) *Handler {
	return &Handler{testimonials: testimonials, render: render}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Home)
	r.Get("/about", h.static("pages/about", "Biz haqimizda", nil))
	r.Get("/features", h.static("pages/features", "Imkoniyatlar", Features))
	r.Get("/pricing", h.static("pages/pricing", "Tariflar", Plans))
	r.Get("/faq", h.static("pages/faq", "Ko'p so'raladigan savollar", FAQ))
}

type homeView struct {
	Testimonials []testimonial.Testimonial
	Features     []Feature
	Plans        []Plan
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	items, err := h.testimonials.Featured(r.Context())
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	h.render.Render(w, r, "pages/home", "Bosh sahifa", homeView{
		Testimonials: items,
		Features:     Features,
		Plans:        Plans,
	})
}

func (h *Handler) static(page, title string, data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.Render(w, r, page, title, data)
	}
}
