package domain

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationDenied   ApplicationStatus = "denied"
)

// Application is a lawyer's bid for an open case. It is created pending and
// moves to accepted or denied exactly once; for any case at most one
// application may ever hold the accepted status.
type Application struct {
	ID         int64             `json:"id"`
	CaseID     int64             `json:"case_id"`
	LawyerID   int64             `json:"lawyer_id"`
	LawyerName string            `json:"lawyer_name"`
	Proposal   string            `json:"proposal" gorm:"type:text"`
	Status     ApplicationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (Application) TableName() string { return "applications" }
