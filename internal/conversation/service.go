// AngelaMos | 2026
// service.go

package conversation

import (
	"context"
	"errors"

	"github.com/carterperez-dev/balansai/internal/core"
)

const SidebarLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Thread is the chat view: the sidebar list plus the open conversation.
type Thread struct {
	Conversations []Conversation
	Active        *Conversation
	Messages      []Message
}

func (s *Service) Recent(ctx context.Context, userID int64, limit int) ([]Conversation, error) {
	return s.repo.ListForUser(ctx, userID, limit)
}

func (s *Service) Count(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountForUser(ctx, userID)
}

// Open loads the user's conversations and, when activeID is set, that
// conversation's messages. An id the user does not own is ignored.
func (s *Service) Open(ctx context.Context, userID, activeID int64) (*Thread, error) {
	conversations, err := s.repo.ListForUser(ctx, userID, SidebarLimit)
	if err != nil {
		return nil, err
	}

	thread := &Thread{Conversations: conversations, Messages: []Message{}}
	if activeID == 0 {
		return thread, nil
	}

	active, err := s.repo.GetForUser(ctx, activeID, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return thread, nil
		}
		return nil, err
	}

	messages, err := s.repo.Messages(ctx, active.ID)
	if err != nil {
		return nil, err
	}

	thread.Active = active
	thread.Messages = messages
	return thread, nil
}
