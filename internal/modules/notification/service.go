package notification

import (
	"context"
	"fmt"

	"lawlink/internal/domain"
	"lawlink/internal/repository"
)

// Service writes and reads notification records. Workflow call sites treat
// every Notify* call as best-effort: a failed write is the caller's to log
// and swallow, never to propagate.
type Service struct {
	repo *repository.NotificationRepository
}

func NewService(repo *repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		IsRead:  false,
		Data:    data,
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Service) NotifyLawyerApplied(ctx context.Context, clientID, caseID int64, lawyerName string) error {
	return s.Create(
		ctx,
		clientID,
		domain.NotifLawyerApplied,
		"New application",
		fmt.Sprintf("Lawyer %s has applied to your case.", lawyerName),
		map[string]any{
			"case_id": caseID,
		},
	)
}

func (s *Service) NotifyApplicationAccepted(ctx context.Context, lawyerID, caseID int64, caseTitle string) error {
	return s.Create(
		ctx,
		lawyerID,
		domain.NotifApplicationAccepted,
		"Application accepted",
		fmt.Sprintf("You have been assigned to the case %q.", caseTitle),
		map[string]any{
			"case_id": caseID,
		},
	)
}

func (s *Service) NotifyApplicationDenied(ctx context.Context, lawyerID, caseID int64, caseTitle string) error {
	return s.Create(
		ctx,
		lawyerID,
		domain.NotifApplicationDenied,
		"Application denied",
		fmt.Sprintf("Your application for the case %q was denied.", caseTitle),
		map[string]any{
			"case_id": caseID,
		},
	)
}

func (s *Service) NotifyMilestoneAdded(ctx context.Context, userID, caseID int64, milestoneID, title string) error {
	return s.Create(
		ctx,
		userID,
		domain.NotifMilestoneAdded,
		"Milestone added",
		fmt.Sprintf("A new milestone %q was added to your case.", title),
		map[string]any{
			"case_id":      caseID,
			"milestone_id": milestoneID,
		},
	)
}

func (s *Service) NotifyMilestoneCompleted(ctx context.Context, userID, caseID int64, milestoneID, title string) error {
	return s.Create(
		ctx,
		userID,
		domain.NotifMilestoneCompleted,
		"Milestone completed",
		fmt.Sprintf("Milestone %q has been marked as completed.", title),
		map[string]any{
			"case_id":      caseID,
			"milestone_id": milestoneID,
		},
	)
}

func (s *Service) NotifyNewMessage(ctx context.Context, userID, caseID, senderID int64) error {
	return s.Create(
		ctx,
		userID,
		domain.NotifNewMessage,
		"New message",
		"You have a new message in your case chat.",
		map[string]any{
			"case_id":   caseID,
			"sender_id": senderID,
		},
	)
}
