// AngelaMos | 2026
// service_test.go

package conversation

import (
	"context"
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

var conversationFields = []string{"id", "user_id", "title", "created_at", "updated_at", "message_count"}

func TestGetForUserScopesToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.id = $1 AND c.user_id = $2`)).
		WithArgs(int64(9), int64(2)).
		WillReturnRows(sqlmock.NewRows(conversationFields))

	_, err := repo.GetForUser(context.Background(), 9, 2)
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenLoadsActiveThread(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(NewRepository(db))
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM conversations c\s+WHERE c.user_id = \$1`).
		WithArgs(int64(2), SidebarLimit).
		WillReturnRows(sqlmock.NewRows(conversationFields).
			AddRow(5, 2, "Soliq hisoboti", now, now, 2).
			AddRow(4, 2, "", now, now, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.id = $1 AND c.user_id = $2`)).
		WithArgs(int64(5), int64(2)).
		WillReturnRows(sqlmock.NewRows(conversationFields).AddRow(5, 2, "Soliq hisoboti", now, now, 2))
	mock.ExpectQuery(`FROM messages\s+WHERE conversation_id = \$1\s+ORDER BY created_at, id`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "conversation_id", "role", "content", "created_at"}).
			AddRow(1, 5, RoleUser, "QQS qancha?", now).
			AddRow(2, 5, RoleAssistant, "12%", now))

	thread, err := svc.Open(context.Background(), 2, 5)
	require.NoError(t, err)
	require.NotNil(t, thread.Active)
	assert.Len(t, thread.Conversations, 2)
	assert.Equal(t, "Yangi suhbat", thread.Conversations[1].DisplayTitle())
	require.Len(t, thread.Messages, 2)
	assert.True(t, thread.Messages[0].FromUser())
	assert.False(t, thread.Messages[1].FromUser())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenIgnoresForeignConversation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(NewRepository(db))

	mock.ExpectQuery(`FROM conversations c\s+WHERE c.user_id = \$1`).
		WithArgs(int64(2), SidebarLimit).
		WillReturnRows(sqlmock.NewRows(conversationFields))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE c.id = $1 AND c.user_id = $2`)).
		WithArgs(int64(77), int64(2)).
		WillReturnRows(sqlmock.NewRows(conversationFields))

	thread, err := svc.Open(context.Background(), 2, 77)
	require.NoError(t, err)
	assert.Nil(t, thread.Active)
	assert.Empty(t, thread.Messages)
	require.NoError(t, mock.ExpectationsWereMet())
}
