// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/balansai/internal/auth"
	"github.com/carterperez-dev/balansai/internal/config"
	"github.com/carterperez-dev/balansai/internal/conversation"
	"github.com/carterperez-dev/balansai/internal/payment"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

type stubPasswords struct {
	err   error
	calls int
}

func (s *stubPasswords) ChangePassword(context.Context, int64, auth.ChangePasswordRequest) error {
	s.calls++
	return s.err
}

type stubHistory struct{}

func (stubHistory) Recent(context.Context, int64, int) ([]payment.Payment, error) {
	return []payment.Payment{{ID: 1, Amount: "149000.00", Plan: PlanPro, Status: payment.StatusCompleted, CreatedAt: fixedTime}}, nil
}

type stubConversations struct{}

func (stubConversations) Recent(context.Context, int64, int) ([]conversation.Conversation, error) {
	return []conversation.Conversation{}, nil
}

func (stubConversations) Count(context.Context, int64) (int, error) {
	return 0, nil
}

type testApp struct {
	router  http.Handler
	mock    sqlmock.Sqlmock
	cookies []*http.Cookie
}

func newTestApp(t *testing.T, passwords PasswordChanger) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, mock := newMockDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sm := session.NewManager(session.NewRedisStore(client), config.SessionConfig{
		SecretKey:  "user-handler-test-secret-0123456789abcd",
		CookieName: "sid",
		TTL:        time.Hour,
	}, logger)

	render, err := web.NewRenderer(nil, logger)
	require.NoError(t, err)

	h := NewHandler(NewService(NewRepository(db)), passwords, stubHistory{}, stubConversations{}, render)

	r := chi.NewRouter()
	r.Use(sm.Middleware)
	h.RegisterRoutes(r)
	r.Route("/admin", h.RegisterAdminRoutes)
	r.Get("/as-user", func(w http.ResponseWriter, r *http.Request) {
		_ = session.FromContext(r.Context()).Login(r.Context(), session.NewUser(session.UserIdentity{ID: 1, Name: "Ali"}))
	})
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		flashes, _ := s.Flashes(r.Context())
		msgs := make([]string, 0, len(flashes))
		for _, f := range flashes {
			msgs = append(msgs, f.Category+":"+f.Message)
		}
		_, _ = io.WriteString(w, s.Principal().Role().String()+"|"+strings.Join(msgs, ","))
	})

	return &testApp{router: r, mock: mock}
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

func (a *testApp) expectUser(id int64, active bool) {
	a.mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(userRow(sqlmock.NewRows(userFields), id, "Ali", "ali@example.com", nil, active))
}

func TestDashboardRendersAccount(t *testing.T) {
	app := newTestApp(t, &stubPasswords{})
	app.do(http.MethodGet, "/as-user", nil)
	app.expectUser(1, true)

	rec := app.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Salom, Ali!")
	assert.Contains(t, rec.Body.String(), "149000.00")
	require.NoError(t, app.mock.ExpectationsWereMet())
}

func TestDashboardSignsOutBlockedAccount(t *testing.T) {
	app := newTestApp(t, &stubPasswords{})
	app.do(http.MethodGet, "/as-user", nil)
	app.expectUser(1, false)

	rec := app.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, session.UserLoginPath, rec.Header().Get("Location"))
	assert.Equal(t, "anonymous|error:Iltimos, avval tizimga kiring", app.do(http.MethodGet, "/whoami", nil).Body.String())
}

func TestProfileRejectedPasswordChangeKeepsProfile(t *testing.T) {
	passwords := &stubPasswords{err: auth.ErrInvalidCredentials}
	app := newTestApp(t, passwords)
	app.do(http.MethodGet, "/as-user", nil)
	app.expectUser(1, true)

	rec := app.do(http.MethodPost, "/dashboard/profile", url.Values{
		"full_name":        {"Ali Valiyev"},
		"current_password": {"wrong"},
		"new_password":     {"Abcdefg1"},
		"confirm_password": {"Abcdefg1"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, passwords.calls)
	assert.Equal(t, "user|error:"+msgWrongPassword, app.do(http.MethodGet, "/whoami", nil).Body.String())
	require.NoError(t, app.mock.ExpectationsWereMet())
}

func TestProfileUpdateWithoutPassword(t *testing.T) {
	passwords := &stubPasswords{}
	app := newTestApp(t, passwords)
	app.do(http.MethodGet, "/as-user", nil)
	app.expectUser(1, true)
	app.mock.ExpectExec(`SET full_name = \$2, phone = \$3, company = \$4`).
		WithArgs(int64(1), "Ali Valiyev", "+998901234567", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := app.do(http.MethodPost, "/dashboard/profile", url.Values{
		"full_name": {"Ali Valiyev"},
		"phone":     {"+998901234567"},
	})
	assert.Equal(t, "/dashboard/profile", rec.Header().Get("Location"))
	assert.Zero(t, passwords.calls)
	assert.Equal(t, "user|success:"+msgProfileUpdated, app.do(http.MethodGet, "/whoami", nil).Body.String())
	require.NoError(t, app.mock.ExpectationsWereMet())
}

func TestAdminToggleUnknownUser(t *testing.T) {
	app := newTestApp(t, &stubPasswords{})
	app.mock.ExpectQuery(`SET is_active = NOT is_active`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"is_active"}))

	rec := app.do(http.MethodPost, "/admin/users/7/toggle", url.Values{})
	assert.Equal(t, adminUsersPath, rec.Header().Get("Location"))
	assert.Equal(t, "anonymous|error:"+msgUserNotFound, app.do(http.MethodGet, "/whoami", nil).Body.String())
}
