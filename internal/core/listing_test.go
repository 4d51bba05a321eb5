// AngelaMos | 2026
// listing_test.go

package core

import (
	"context"
	"math"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestFiltersSkipAbsentValues(t *testing.T) {
	f := &Filters{}
	f.Search("", "name", "email").Equal("plan_type", "").Bool("is_active", nil)

	where, args := f.Where()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFiltersNumberPlaceholdersInOrder(t *testing.T) {
	active := true
	f := &Filters{}
	f.Search("ali", "full_name", "email", "company").
		Equal("plan_type", "pro").
		Bool("is_active", &active)

	where, args := f.Where()
	assert.Equal(t,
		"WHERE (full_name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1) AND plan_type = $2 AND is_active = $3",
		where,
	)
	assert.Equal(t, []any{"%ali%", "pro", true}, args)
}

func TestFiltersEscapeLikeMetacharacters(t *testing.T) {
	f := &Filters{}
	f.Search("50%_off", "title")

	_, args := f.Where()
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{18, 9, 2},
		{19, 9, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPageRequestNormalize(t *testing.T) {
	p := PageRequest{Page: -3, PageSize: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = PageRequest{Page: 3, PageSize: 500}
	p.Normalize()
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, 200, p.Offset())
}

func TestListRunsCountAndPageWithSameArgs(t *testing.T) {
	db, mock := newMockDB(t)

	f := &Filters{}
	f.Search("acme", "name").Equal("status", "completed")

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM items WHERE (name ILIKE $1) AND status = $2",
	)).WithArgs("%acme%", "completed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name FROM items WHERE (name ILIKE $1) AND status = $2 ORDER BY id DESC LIMIT $3 OFFSET $4",
	)).WithArgs("%acme%", "completed", 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(5, "e").AddRow(4, "d").AddRow(3, "c").AddRow(2, "b").AddRow(1, "a"))

	page, err := List[row](context.Background(), db, ListQuery{
		Select:  "id, name",
		From:    "items",
		Filters: f,
		OrderBy: "id DESC",
		Page:    PageRequest{Page: 2, PageSize: 20},
	})
	require.NoError(t, err)

	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 2, page.Page)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPageBeyondEndIsEmpty(t *testing.T) {
	db, mock := newMockDB(t)

	for _, pageNum := range []int{2, 7, 1000, MaxPage, math.MaxInt} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		page, err := List[row](context.Background(), db, ListQuery{
			Select:  "id, name",
			From:    "items",
			OrderBy: "id",
			Page:    PageRequest{Page: pageNum, PageSize: 9},
		})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
		assert.LessOrEqual(t, page.Page, MaxPage)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListZeroRowsHasZeroPages(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM items WHERE status = $1")).
		WithArgs("failed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	f := &Filters{}
	f.Equal("status", "failed")

	page, err := List[row](context.Background(), db, ListQuery{
		Select: "id, name", From: "items", Filters: f, OrderBy: "id",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStreamVisitsEveryRow(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM items ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a").AddRow(2, "b"))

	var names []string
	err := Stream(context.Background(), db, ListQuery{
		Select: "id, name", From: "items", OrderBy: "id",
	}, func(r *row) error {
		names = append(names, r.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}
