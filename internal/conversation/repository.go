// AngelaMos | 2026
// repository.go

package conversation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/balansai/internal/core"
)

type Repository interface {
	ListForUser(ctx context.Context, userID int64, limit int) ([]Conversation, error)
	GetForUser(ctx context.Context, id, userID int64) (*Conversation, error)
	Messages(ctx context.Context, conversationID int64) ([]Message, error)
	CountForUser(ctx context.Context, userID int64) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const conversationColumns = `c.id, c.user_id, c.title, c.created_at, c.updated_at,
		(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id) AS message_count`

func (r *repository) ListForUser(ctx context.Context, userID int64, limit int) ([]Conversation, error) {
	query := `SELECT ` + conversationColumns + `
		FROM conversations c
		WHERE c.user_id = $1
		ORDER BY c.updated_at DESC, c.id DESC
		LIMIT $2`

	conversations := []Conversation{}
	if err := r.db.SelectContext(ctx, &conversations, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return conversations, nil
}

// GetForUser scopes the lookup to the owner so one user can never open
// another's thread.
func (r *repository) GetForUser(ctx context.Context, id, userID int64) (*Conversation, error) {
	query := `SELECT ` + conversationColumns + `
		FROM conversations c
		WHERE c.id = $1 AND c.user_id = $2`

	var c Conversation
	if err := r.db.GetContext(ctx, &c, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	return &c, nil
}

func (r *repository) Messages(ctx context.Context, conversationID int64) ([]Message, error) {
	query := `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at, id`

	messages := []Message{}
	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return messages, nil
}

func (r *repository) CountForUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM conversations WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("count conversations: %w", err)
	}
	return n, nil
}
