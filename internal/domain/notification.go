package domain

import "time"

type NotificationType string

const (
	NotifLawyerApplied       NotificationType = "lawyer_applied"
	NotifMilestoneAdded      NotificationType = "milestone_added"
	NotifMilestoneCompleted  NotificationType = "milestone_completed"
	NotifApplicationAccepted NotificationType = "application_accepted"
	NotifApplicationDenied   NotificationType = "application_denied"
	NotifNewMessage          NotificationType = "new_message"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	IsRead    bool             `json:"is_read"`
	Data      any              `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time        `json:"created_at"`
}
