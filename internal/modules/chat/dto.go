package chat

import (
	"time"

	"lawlink/internal/domain"
)

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// WSEvent is the payload pushed over the websocket to online participants.
type WSEvent struct {
	Type           string    `json:"type"`
	ConversationID int64     `json:"conversation_id"`
	CaseID         int64     `json:"case_id"`
	MessageID      int64     `json:"message_id"`
	SenderID       int64     `json:"sender_id"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func toWSEvent(conv *domain.Conversation, msg *domain.Message) WSEvent {
	return WSEvent{
		Type:           "message",
		ConversationID: conv.ID,
		CaseID:         conv.CaseID,
		MessageID:      msg.ID,
		SenderID:       msg.SenderID,
		Text:           msg.Text,
		CreatedAt:      msg.CreatedAt,
	}
}
