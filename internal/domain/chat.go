package domain

import "time"

// Conversation is the chat thread attached to a case. Exactly one per case,
// between the owning client and the assigned lawyer.
type Conversation struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	CaseID        int64     `json:"case_id" gorm:"not null;uniqueIndex"`
	ClientID      int64     `json:"client_id" gorm:"not null"`
	LawyerID      int64     `json:"lawyer_id" gorm:"not null"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`

	// Filled by the service for list views, not stored.
	LastMessage *Message `json:"last_message,omitempty" gorm:"-"`
	UnreadCount int64    `json:"unread_count" gorm:"-"`
}

type Message struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	ConversationID int64     `json:"conversation_id" gorm:"not null;index"`
	SenderID       int64     `json:"sender_id" gorm:"not null"`
	Text           string    `json:"text" gorm:"type:text"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
