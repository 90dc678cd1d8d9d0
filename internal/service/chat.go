package service

import (
	"context"
	"fmt"

	"github.com/planit/api/internal/model"
)

// ChatRepositoryInterface defines the interface for chat message storage
type ChatRepositoryInterface interface {
	Create(ctx context.Context, message *model.ChatMessage) error
	GetByEvent(ctx context.Context, eventID string, limit, offset int) ([]*model.ChatMessage, error)
}

// ChatEventRepository is the slice of the event repository the chat rules need
type ChatEventRepository interface {
	Get(ctx context.Context, eventID string) (*model.Event, error)
	GetParticipant(ctx context.Context, eventID, userID string) (*model.Participant, error)
}

// ChatService handles event-scoped chat
type ChatService struct {
	repo      ChatRepositoryInterface
	eventRepo ChatEventRepository
}

// NewChatService creates a new chat service
func NewChatService(repo ChatRepositoryInterface, eventRepo ChatEventRepository) *ChatService {
	return &ChatService{repo: repo, eventRepo: eventRepo}
}

// Send posts a message to an event's chat. Participants only.
func (s *ChatService) Send(ctx context.Context, eventID, userID, text string) (*model.ChatMessage, error) {
	canonical, fe := model.ValidateChatMessage(text)
	if fe != nil {
		return nil, model.NewValidationError([]model.FieldError{*fe})
	}

	if err := s.requireParticipant(ctx, eventID, userID); err != nil {
		return nil, err
	}

	message := &model.ChatMessage{EventID: eventID, UserID: userID, Text: canonical}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}
	return message, nil
}

// List returns an event's messages, oldest first. Participants only.
func (s *ChatService) List(ctx context.Context, eventID, userID string, limit, offset int) ([]*model.ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	if err := s.requireParticipant(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByEvent(ctx, eventID, limit, offset)
}

func (s *ChatService) requireParticipant(ctx context.Context, eventID, userID string) error {
	event, err := s.eventRepo.Get(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return ErrEventNotFound
	}

	participant, err := s.eventRepo.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if participant == nil {
		return ErrUserNotInEvent
	}
	return nil
}
