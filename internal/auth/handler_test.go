// AngelaMos | 2026
// handler_test.go

package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/balansai/internal/config"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

type testApp struct {
	router  http.Handler
	cookies []*http.Cookie
}

func newTestApp(t *testing.T, users UserProvider) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sm := session.NewManager(session.NewRedisStore(client), config.SessionConfig{
		SecretKey:  "auth-handler-test-secret-0123456789abc",
		CookieName: "sid",
		TTL:        time.Hour,
	}, logger)

	render, err := web.NewRenderer(nil, logger)
	require.NoError(t, err)

	h := NewHandler(newTestService(users), render)
	passthrough := func(next http.Handler) http.Handler { return next }

	r := chi.NewRouter()
	r.Use(sm.Middleware)
	h.RegisterRoutes(r, passthrough)
	r.Route("/admin", func(r chi.Router) { h.RegisterAdminRoutes(r, passthrough) })
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		flashes, _ := s.Flashes(r.Context())
		msgs := make([]string, 0, len(flashes))
		for _, f := range flashes {
			msgs = append(msgs, f.Category+":"+f.Message)
		}
		_, _ = io.WriteString(w, s.Principal().Role().String()+"|"+strings.Join(msgs, ","))
	})

	return &testApp{router: r}
}

func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		a.cookies = []*http.Cookie{c}
	}
	return rec
}

func TestLoginBlockedAccountShowsBlockedNotice(t *testing.T) {
	users := newFakeUsers()
	users.add(t, "blocked@example.com", "Abcdefg1", false)
	app := newTestApp(t, users)

	rec := app.do(http.MethodPost, "/login", url.Values{
		"email": {"blocked@example.com"}, "password": {"Abcdefg1"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.UserLoginPath, rec.Header().Get("Location"))

	state := app.do(http.MethodGet, "/whoami", nil).Body.String()
	assert.Equal(t, "anonymous|error:"+msgBlocked, state)
}

func TestLoginAndLogout(t *testing.T) {
	users := newFakeUsers()
	users.add(t, "ok@example.com", "Abcdefg1", true)
	app := newTestApp(t, users)

	rec := app.do(http.MethodPost, "/login", url.Values{
		"email": {"ok@example.com"}, "password": {"Abcdefg1"},
	})
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Equal(t, "user|success:"+msgWelcome, app.do(http.MethodGet, "/whoami", nil).Body.String())

	rec = app.do(http.MethodGet, "/logout", nil)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "anonymous|info:"+msgLoggedOut, app.do(http.MethodGet, "/whoami", nil).Body.String())
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUsers()
	users.add(t, "ok@example.com", "Abcdefg1", true)
	app := newTestApp(t, users)

	app.do(http.MethodPost, "/login", url.Values{
		"email": {"ok@example.com"}, "password": {"nope"},
	})
	assert.Equal(t, "anonymous|error:"+msgInvalidCredentials, app.do(http.MethodGet, "/whoami", nil).Body.String())
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	users := newFakeUsers()
	app := newTestApp(t, users)

	rec := app.do(http.MethodPost, "/register", url.Values{
		"full_name":        {"Ali"},
		"email":            {"ali@example.com"},
		"password":         {"abcdefg1"},
		"confirm_password": {"abcdefg1"},
	})
	assert.Equal(t, "/register", rec.Header().Get("Location"))
	assert.Empty(t, users.byEmail)
}

func TestAdminLogoutKeepsSession(t *testing.T) {
	app := newTestApp(t, newFakeUsers())

	rec := app.do(http.MethodPost, "/admin/login", url.Values{
		"username": {"admin"}, "password": {"S3cret-admin"},
	})
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
	assert.Equal(t, "admin|success:"+msgWelcome, app.do(http.MethodGet, "/whoami", nil).Body.String())

	rec = app.do(http.MethodGet, "/admin/logout", nil)
	assert.Equal(t, session.AdminLoginPath, rec.Header().Get("Location"))
	assert.Equal(t, "anonymous|info:"+msgLoggedOut, app.do(http.MethodGet, "/whoami", nil).Body.String())
}

func TestLoginPageRenders(t *testing.T) {
	app := newTestApp(t, newFakeUsers())

	rec := app.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)
}
