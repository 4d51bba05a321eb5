// AngelaMos | 2026
// handler_test.go

package testimonial

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/balansai/internal/config"
	"github.com/carterperez-dev/balansai/internal/session"
	"github.com/carterperez-dev/balansai/internal/web"
)

var testimonialFields = []string{
	"id", "name", "position", "company", "content", "rating", "display_order", "is_active", "created_at",
}

type testApp struct {
	router  http.Handler
	mock    sqlmock.Sqlmock
	svc     *Service
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sm := session.NewManager(session.NewRedisStore(client), config.SessionConfig{
		SecretKey:  "testimonial-test-secret-0123456789abcdef",
		CookieName: "sid",
		TTL:        time.Hour,
	}, logger)

	render, err := web.NewRenderer(nil, logger)
	require.NoError(t, err)

	svc := NewService(NewRepository(sqlx.NewDb(mockDB, "sqlmock")))
	h := NewHandler(svc, render)

	r := chi.NewRouter()
	r.Use(sm.Middleware)
	r.Route("/admin", h.RegisterAdminRoutes)
	r.Get("/flashes", func(w http.ResponseWriter, r *http.Request) {
		flashes, _ := session.FromContext(r.Context()).Flashes(r.Context())
		msgs := make([]string, 0, len(flashes))
		for _, f := range flashes {
			msgs = append(msgs, f.Category+":"+f.Message)
		}
		_, _ = io.WriteString(w, strings.Join(msgs, ","))
	})

	return &testApp{router: r, mock: mock, svc: svc}
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

func TestCreateTestimonial(t *testing.T) {
	app := newTestApp(t)
	app.mock.ExpectQuery(`INSERT INTO testimonials`).
		WithArgs("Aziz", "Bosh buxgalter", "Artel", "Juda qulay", 5, 0, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	rec := app.do(http.MethodPost, "/admin/testimonials/new", url.Values{
		"name":      {"Aziz"},
		"position":  {"Bosh buxgalter"},
		"company":   {"Artel"},
		"content":   {"Juda qulay"},
		"rating":    {"5"},
		"is_active": {"on"},
	})

	assert.Equal(t, testimonialsAt, rec.Header().Get("Location"))
	assert.Equal(t, "success:"+msgCreated, app.do(http.MethodGet, "/flashes", nil).Body.String())
	require.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	app := newTestApp(t)

	for _, rating := range []string{"0", "6", "abc"} {
		rec := app.do(http.MethodPost, "/admin/testimonials/new", url.Values{
			"name": {"Aziz"}, "content": {"..."}, "rating": {rating},
		})
		assert.Equal(t, testimonialsAt+"/new", rec.Header().Get("Location"), rating)
		assert.True(t, strings.HasPrefix(app.do(http.MethodGet, "/flashes", nil).Body.String(), "error:"), rating)
	}
	require.NoError(t, app.mock.ExpectationsWereMet())
}

func TestToggleReportsNewState(t *testing.T) {
	app := newTestApp(t)
	app.mock.ExpectQuery(regexp.QuoteMeta(`UPDATE testimonials SET is_active = NOT is_active WHERE id = $1 RETURNING is_active`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"is_active"}).AddRow(false))

	app.do(http.MethodPost, "/admin/testimonials/2/toggle", url.Values{})
	assert.Equal(t, "success:"+msgHidden, app.do(http.MethodGet, "/flashes", nil).Body.String())
}

func TestFeaturedListsActiveInDisplayOrder(t *testing.T) {
	app := newTestApp(t)
	app.mock.ExpectQuery(`WHERE is_active = TRUE\s+ORDER BY display_order ASC, created_at DESC, id DESC\s+LIMIT \$1`).
		WithArgs(HomePageLimit).
		WillReturnRows(sqlmock.NewRows(testimonialFields).
			AddRow(3, "Malika", "", "", "Zo'r", 4, 0, true, time.Now()))

	items, err := app.svc.Featured(t.Context())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Malika", items[0].Name)
	require.NoError(t, app.mock.ExpectationsWereMet())
}

func TestListRendersStars(t *testing.T) {
	app := newTestApp(t)
	app.mock.ExpectQuery(`FROM testimonials ORDER BY`).
		WillReturnRows(sqlmock.NewRows(testimonialFields).
			AddRow(1, "Aziz", "CFO", "Artel", "Yaxshi", 3, 1, true, time.Now()))

	rec := app.do(http.MethodGet, "/admin/testimonials", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "★★★☆☆")
}
