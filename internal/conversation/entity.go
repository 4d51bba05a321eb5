// AngelaMos | 2026
// entity.go

package conversation

import (
	"time"
)

type Conversation struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	Title        string    `db:"title"`
	MessageCount int       `db:"message_count"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// DisplayTitle falls back to a generic label for untitled threads.
func (c Conversation) DisplayTitle() string {
	if c.Title == "" {
		return "Yangi suhbat"
	}
	return c.Title
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	Role           string    `db:"role"`
	Content        string    `db:"content"`
	CreatedAt      time.Time `db:"created_at"`
}

func (m Message) FromUser() bool {
	return m.Role == RoleUser
}
