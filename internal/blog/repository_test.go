// AngelaMos | 2026
// repository_test.go

package blog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
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

func TestCreateMapsSlugViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO blog_posts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: SlugConstraint})

	err := repo.Create(context.Background(), &Post{Title: "T", Slug: "t", Content: "x"})
	require.Error(t, err)
	assert.True(t, core.IsConstraintViolation(err, SlugConstraint))
}

func TestGetPublishedBySlugMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE slug = $1 AND is_published = TRUE`)).
		WithArgs("draft-post").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetPublishedBySlug(context.Background(), "draft-post")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestListPublishedUsesPublicPageSize(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM blog_posts WHERE is_published = TRUE AND (title ILIKE $1 OR excerpt ILIKE $1 OR content ILIKE $1) AND category = $2`,
	)).
		WithArgs("%soliq%", "Yangiliklar").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $3 OFFSET $4`)).
		WithArgs("%soliq%", "Yangiliklar", PublicPageSize, PublicPageSize).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug"}).AddRow(10, "Oxirgi", "oxirgi"))

	page, err := repo.ListPublished(context.Background(), PublicParams{Page: 2, Search: "soliq", Category: "Yangiliklar"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "oxirgi", page.Items[0].Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}
