// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/balansai/internal/core"
	"github.com/carterperez-dev/balansai/internal/web"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func newRouter(t *testing.T, cfg HandlerConfig) http.Handler {
	t.Helper()

	render, err := web.NewRenderer(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	cfg.Render = render

	r := chi.NewRouter()
	r.Route("/admin", NewHandler(cfg).RegisterAdminRoutes)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatsRepositoryLoad(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'completed'")).
		WillReturnRows(sqlmock.NewRows([]string{"total_users", "active_users", "total_revenue", "unread_messages"}).
			AddRow(12, 9, "123456789012345678.91", 3))

	stats, err := NewStatsRepository(db).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalUsers: 12, ActiveUsers: 9, TotalRevenue: "123456789012345678.91", UnreadMessages: 3}, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRendersStats(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"total_users", "active_users", "total_revenue", "unread_messages"}).
			AddRow(4, 2, "149000", 7))

	rec := get(newRouter(t, HandlerConfig{Stats: NewStatsRepository(db)}), "/admin/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "149000.00")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStorageFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))

	rec := get(newRouter(t, HandlerConfig{Stats: NewStatsRepository(db)}), "/admin/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSystemReportsPoolsAndHealth(t *testing.T) {
	rec := get(newRouter(t, HandlerConfig{
		DBStats:    func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25, InUse: 2} },
		RedisStats: func() *redis.PoolStats { return &redis.PoolStats{Hits: 10, TotalConns: 3} },
		DBPing:     func(context.Context) error { return nil },
		RedisPing:  func(context.Context) error { return errors.New("timeout") },
	}), "/admin/system")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		core.JSONResponse
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.True(t, body.Data.Database.Healthy)
	assert.Equal(t, 25, body.Data.Database.Stats.MaxOpenConnections)
	assert.False(t, body.Data.Redis.Healthy)
	assert.Equal(t, uint32(10), body.Data.Redis.Stats.Hits)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}
