// AngelaMos | 2026
// repository_test.go

package payment

import (
	"bytes"
	"context"
	"encoding/csv"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/balansai/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var rowFields = []string{
	"id", "user_id", "amount", "plan", "method", "status", "created_at", "user_name", "user_email",
}

func TestSummarizeCountsOnlyCompletedWithinFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COALESCE(SUM(p.amount), 0) AS revenue, COUNT(*) AS completed FROM ` + rowSource +
			` WHERE (u.full_name ILIKE $1 OR u.email ILIKE $1 OR p.method ILIKE $1) AND p.plan = $2 AND p.status = $3`,
	)).
		WithArgs("%click%", "pro", StatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"revenue", "completed"}).AddRow("298000.00", 2))

	s, err := repo.Summarize(context.Background(), ListParams{Search: "click", Plan: "pro"})
	require.NoError(t, err)
	assert.Equal(t, core.Amount("298000.00"), s.Revenue)
	assert.Equal(t, 2, s.Completed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListJoinsOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM ` + rowSource + ` WHERE p.status = $1`)).
		WithArgs("failed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY p.created_at DESC, p.id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("failed", AdminPageSize, 0).
		WillReturnRows(sqlmock.NewRows(rowFields).
			AddRow(7, 3, "149000.00", "pro", "payme", "failed", now, "Ali Valiyev", "ali@example.com"))

	page, err := repo.List(context.Background(), ListParams{Status: "failed"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(7), page.Items[0].ID)
	assert.Equal(t, "Ali Valiyev", page.Items[0].UserName)
	assert.Equal(t, 1, page.TotalPages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportWritesEveryFilteredRow(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(NewRepository(db))
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT ` + rowColumns + ` FROM ` + rowSource + ` WHERE p.plan = $1 ORDER BY p.created_at DESC, p.id DESC`,
	)).
		WithArgs("enterprise").
		WillReturnRows(sqlmock.NewRows(rowFields).
			AddRow(2, 1, "990000.10", "enterprise", "click", "completed", now, "Bek", "bek@example.com").
			AddRow(1, 1, "990000.00", "enterprise", "", "refunded", now, "Bek", "bek@example.com"))

	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), ListParams{Plan: "enterprise"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Amount", records[0][3])
	assert.Equal(t, "990000.10", records[1][3])
	assert.Equal(t, "click", records[1][5])
	assert.Equal(t, "N/A", records[2][5])
	assert.Equal(t, "2026-03-01 10:00", records[1][7])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentForUserLimits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM payments\s+WHERE user_id = \$1\s+ORDER BY created_at DESC, id DESC\s+LIMIT \$2`).
		WithArgs(int64(4), 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "plan", "method", "status", "created_at"}))

	payments, err := repo.RecentForUser(context.Background(), 4, 5)
	require.NoError(t, err)
	assert.Empty(t, payments)
	require.NoError(t, mock.ExpectationsWereMet())
}
