package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"lawlink/internal/domain"
	"lawlink/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrNotParticipant = errors.New("you are not a participant of this conversation")
	ErrNoLawyer       = errors.New("case has no assigned lawyer yet")
	ErrEmptyContent   = errors.New("message content cannot be empty")
	ErrCaseNotFound   = errors.New("case not found")
)

type NotificationSender interface {
	NotifyNewMessage(ctx context.Context, userID, caseID, senderID int64) error
}

// Service runs the per-case chat between the client and the assigned lawyer.
// Messages are persisted first; the live push over the hub is best-effort,
// and an offline peer gets a notification record instead.
type Service struct {
	chats  *repository.ChatRepository
	cases  *repository.CaseRepository
	hub    *Hub
	notifs NotificationSender
}

func NewService(chats *repository.ChatRepository, cases *repository.CaseRepository, hub *Hub, notifs NotificationSender) *Service {
	return &Service{
		chats:  chats,
		cases:  cases,
		hub:    hub,
		notifs: notifs,
	}
}

// conversationForCase finds or lazily creates the case's conversation. The
// case must already have an assigned lawyer; there is nobody to talk to
// before assignment.
func (s *Service) conversationForCase(ctx context.Context, caseID, userID int64) (*domain.Conversation, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	if c.AssignedLawyerID == nil {
		return nil, ErrNoLawyer
	}
	if userID != c.ClientID && userID != *c.AssignedLawyerID {
		return nil, ErrNotParticipant
	}

	conv, err := s.chats.GetConversationByCaseID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv = &domain.Conversation{
		CaseID:        caseID,
		ClientID:      c.ClientID,
		LawyerID:      *c.AssignedLawyerID,
		LastMessageAt: time.Now().UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.chats.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *Service) SendMessage(ctx context.Context, caseID, senderID int64, text string) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	conv, err := s.conversationForCase(ctx, caseID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	recipient := conv.ClientID
	if senderID == conv.ClientID {
		recipient = conv.LawyerID
	}

	delivered := false
	if s.hub != nil {
		delivered = s.hub.SendToUser(recipient, toWSEvent(conv, msg))
	}
	if !delivered && s.notifs != nil {
		_ = s.notifs.NotifyNewMessage(ctx, recipient, conv.CaseID, senderID)
	}

	return msg, nil
}

func (s *Service) GetMessages(ctx context.Context, caseID, userID int64, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	conv, err := s.conversationForCase(ctx, caseID, userID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.chats.GetMessages(ctx, conv.ID, limit)
	if err != nil {
		return nil, err
	}

	// Opening the thread reads it.
	_ = s.chats.MarkMessagesRead(ctx, conv.ID, userID)

	return msgs, nil
}

func (s *Service) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	convs, err := s.chats.GetUserConversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range convs {
		if last, err := s.chats.GetLastMessage(ctx, convs[i].ID); err == nil {
			convs[i].LastMessage = last
		}
		if unread, err := s.chats.CountUnread(ctx, convs[i].ID, userID); err == nil {
			convs[i].UnreadCount = unread
		}
	}
	return convs, nil
}
