package model

import (
	"strings"
	"time"
)

// MaxChatMessageLength bounds a single chat message.
const MaxChatMessageLength = 400

// ChatMessage is a message posted to an event's chat
type ChatMessage struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	UserID  string    `json:"user_id"`
	Text    string    `json:"text"`
	SentOn  time.Time `json:"sent_on"`
}

// SendMessageRequest carries the raw text of a chat message.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// ValidateChatMessage checks 1..400 chars, not blank.
func ValidateChatMessage(raw string) (string, *FieldError) {
	if strings.TrimSpace(raw) == "" {
		return "", &FieldError{Field: "text", Message: "message is blank"}
	}
	if len(raw) > MaxChatMessageLength {
		return "", &FieldError{Field: "text", Message: "message is too long"}
	}
	return raw, nil
}
