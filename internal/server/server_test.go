// AngelaMos | 2026
// server_test.go

package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/balansai/internal/admin"
	"github.com/carterperez-dev/balansai/internal/auth"
	"github.com/carterperez-dev/balansai/internal/blog"
	"github.com/carterperez-dev/balansai/internal/config"
	"github.com/carterperez-dev/balansai/internal/contact"
	"github.com/carterperez-dev/balansai/internal/conversation"
	"github.com/carterperez-dev/balansai/internal/health"
	"github.com/carterperez-dev/balansai/internal/pages"
	"github.com/carterperez-dev/balansai/internal/payment"
	"github.com/carterperez-dev/balansai/internal/seo"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/setting"
	"github.com/carterperez-dev/balansai/internal/testimonial"
	"github.com/carterperez-dev/balansai/internal/user"
	"github.com/carterperez-dev/balansai/internal/web"
)

type okChecker struct{}

func (okChecker) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T) (*Server, *health.Handler) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	db := sqlx.NewDb(mockDB, "sqlmock")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := session.NewManager(session.NewRedisStore(client), config.SessionConfig{
		SecretKey:  "server-test-secret-0123456789abcdefgh",
		CookieName: "sid",
		TTL:        time.Hour,
	}, logger)

	render, err := web.NewRenderer(nil, logger)
	require.NoError(t, err)

	users := user.NewService(user.NewRepository(db))
	authSvc := auth.NewService(users, config.AdminConfig{Username: "admin", Password: "s3cret-pass"})
	payments := payment.NewService(payment.NewRepository(db))
	conversations := conversation.NewService(conversation.NewRepository(db))
	posts := blog.NewService(blog.NewRepository(db), logger)
	testimonials := testimonial.NewService(testimonial.NewRepository(db))

	hh := health.NewHandler(health.Dependency{Name: "database", Checker: okChecker{}})
	srv := New(Config{
		ServerConfig:  config.ServerConfig{Host: "127.0.0.1", Port: 0},
		HealthHandler: hh,
		Logger:        logger,
	})

	srv.Mount(Handlers{
		Auth:         auth.NewHandler(authSvc, render),
		Pages:        pages.NewHandler(testimonials, render),
		User:         user.NewHandler(users, authSvc, payments, conversations, render),
		Payment:      payment.NewHandler(payments, render, user.Plans),
		Conversation: conversation.NewHandler(conversations, render),
		Contact:      contact.NewHandler(contact.NewService(contact.NewRepository(db)), render),
		Blog:         blog.NewHandler(posts, render),
		Testimonial:  testimonial.NewHandler(testimonials, render),
		Setting:      setting.NewHandler(setting.NewService(db), render),
		Admin:        admin.NewHandler(admin.HandlerConfig{Stats: admin.NewStatsRepository(db), Render: render}),
		SEO:          seo.NewHandler(srv.Router(), posts, "https://balansai.uz"),
	}, RouteConfig{
		Sessions: sessions,
		Render:   render,
		Logger:   logger,
	})

	return srv, hh
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGuardsProtectPrivateAreas(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	tests := []struct {
		path string
		want string
	}{
		{"/dashboard", session.UserLoginPath},
		{"/dashboard/payments", session.UserLoginPath},
		{"/dashboard/chat", session.UserLoginPath},
		{"/admin", session.AdminLoginPath},
		{"/admin/users", session.AdminLoginPath},
		{"/admin/system", session.AdminLoginPath},
		{"/admin/settings", session.AdminLoginPath},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(router, tt.path)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestPublicAndAmbientRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	assert.Equal(t, http.StatusOK, get(router, "/login").Code)
	assert.Equal(t, http.StatusOK, get(router, "/admin/login").Code)
	assert.Equal(t, http.StatusOK, get(router, "/about").Code)
	assert.Equal(t, http.StatusOK, get(router, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(router, "/robots.txt").Code)
	assert.Equal(t, http.StatusOK, get(router, "/static/js/main.js").Code)

	rec := get(router, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestSitemapPathsFromMountedRouter(t *testing.T) {
	srv, _ := newTestServer(t)

	paths, err := seo.PublicPaths(srv.Router())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/", "/about", "/blog", "/contact", "/faq", "/features", "/login", "/pricing", "/register",
	}, paths)
}

func TestShutdownFailsProbesFirst(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx, 0))

	rec := get(srv.Router(), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
