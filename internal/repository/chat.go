package repository

import (
	"context"

	"github.com/planit/api/internal/database"
	"github.com/planit/api/internal/model"
)

// ChatRepository handles event chat message data access
type ChatRepository struct {
	db database.Database
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db database.Database) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create stores a chat message
func (r *ChatRepository) Create(ctx context.Context, message *model.ChatMessage) error {
	query := `
		CREATE chat_message CONTENT {
			event: type::record($event_id),
			user: type::record($user_id),
			text: $text,
			sent_on: time::now()
		}`
	vars := map[string]interface{}{
		"event_id": message.EventID,
		"user_id":  message.UserID,
		"text":     message.Text,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	if len(result) > 0 {
		if data, uerr := unwrapRecord(result[0]); uerr == nil {
			message.ID = convertSurrealID(data["id"])
			message.SentOn = getTime(data, "sent_on")
		}
	}
	return nil
}

// GetByEvent lists an event's messages oldest first
func (r *ChatRepository) GetByEvent(ctx context.Context, eventID string, limit, offset int) ([]*model.ChatMessage, error) {
	query := `SELECT * FROM chat_message WHERE event = type::record($event_id) ORDER BY sent_on ASC LIMIT $limit START $offset`
	vars := map[string]interface{}{
		"event_id": eventID,
		"limit":    limit,
		"offset":   offset,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	messages := make([]*model.ChatMessage, 0)
	for _, data := range unwrapRecords(result) {
		normalizeLinks(data, "event", "user")
		messages = append(messages, &model.ChatMessage{
			ID:      convertSurrealID(data["id"]),
			EventID: getString(data, "event"),
			UserID:  getString(data, "user"),
			Text:    getString(data, "text"),
			SentOn:  getTime(data, "sent_on"),
		})
	}
	return messages, nil
}
