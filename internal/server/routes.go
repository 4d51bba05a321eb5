// AngelaMos | 2026
// routes.go

package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/balansai/internal/admin"
	"github.com/carterperez-dev/balansai/internal/auth"
	"github.com/carterperez-dev/balansai/internal/blog"
	"github.com/carterperez-dev/balansai/internal/contact"
	"github.com/carterperez-dev/balansai/internal/conversation"
	"github.com/carterperez-dev/balansai/internal/middleware"
	"github.com/carterperez-dev/balansai/internal/pages"
	"github.com/carterperez-dev/balansai/internal/payment"
	"github.com/carterperez-dev/balansai/internal/seo"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/setting"
	"github.com/carterperez-dev/balansai/internal/testimonial"
	"github.com/carterperez-dev/balansai/internal/user"
	"github.com/carterperez-dev/balansai/internal/web"
)

// Handlers are the feature handlers mounted by Mount.
type Handlers struct {
	Auth         *auth.Handler
	Pages        *pages.Handler
	User         *user.Handler
	Payment      *payment.Handler
	Conversation *conversation.Handler
	Contact      *contact.Handler
	Blog         *blog.Handler
	Testimonial  *testimonial.Handler
	Setting      *setting.Handler
	Admin        *admin.Handler
	SEO          *seo.Handler
}

type RouteConfig struct {
	Sessions   *session.Manager
	Render     *web.Renderer
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Production bool
	// FormLimit throttles credential and contact form submissions.
	FormLimit func(http.Handler) http.Handler
}

// Mount installs the middleware chain and every route. Health probes
// sit outside the session middleware so they never touch redis.
func (s *Server) Mount(h Handlers, rc RouteConfig) {
	r := s.router

	limit := rc.FormLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(rc.Logger))
	if rc.Tracer != nil {
		r.Use(middleware.Tracing(rc.Tracer))
	}
	r.Use(middleware.Recoverer(rc.Logger, rc.Render.PanicPage()))
	r.Use(middleware.SecurityHeaders(rc.Production))

	r.NotFound(rc.Render.NotFoundHandler())
	r.MethodNotAllowed(rc.Render.MethodNotAllowedHandler())

	if s.health != nil {
		s.health.RegisterRoutes(r)
	}
	r.Handle("/static/*", web.StaticHandler())

	r.Group(func(r chi.Router) {
		r.Use(rc.Sessions.Middleware)

		h.Pages.RegisterRoutes(r)
		h.Contact.RegisterRoutes(r, limit)
		h.Blog.RegisterRoutes(r)
		h.Auth.RegisterRoutes(r, limit)
		h.SEO.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			h.User.RegisterRoutes(r)
			h.Payment.RegisterRoutes(r)
			h.Conversation.RegisterRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			h.Auth.RegisterAdminRoutes(r, limit)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				h.Admin.RegisterAdminRoutes(r)
				h.User.RegisterAdminRoutes(r)
				h.Payment.RegisterAdminRoutes(r)
				h.Contact.RegisterAdminRoutes(r)
				h.Blog.RegisterAdminRoutes(r)
				h.Testimonial.RegisterAdminRoutes(r)
				h.Setting.RegisterAdminRoutes(r)
			})
		})
	})
}
