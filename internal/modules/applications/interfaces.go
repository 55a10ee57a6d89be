package applications

import (
	"context"

	"lawlink/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	GetByCaseID(ctx context.Context, caseID int64) ([]domain.Application, error)
	GetByLawyerID(ctx context.Context, lawyerID int64) ([]domain.Application, error)
	HasActiveApplication(ctx context.Context, caseID, lawyerID int64) (bool, error)
	Deny(ctx context.Context, id int64) error
	// ApproveAndAssign commits accept-target / deny-rest / assign-case as one
	// unit; on any failure none of the three effects remain.
	ApproveAndAssign(ctx context.Context, caseID, applicationID, lawyerID int64) error
}

type CaseReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type NotificationSender interface {
	NotifyLawyerApplied(ctx context.Context, clientID, caseID int64, lawyerName string) error
	NotifyApplicationAccepted(ctx context.Context, lawyerID, caseID int64, caseTitle string) error
	NotifyApplicationDenied(ctx context.Context, lawyerID, caseID int64, caseTitle string) error
}
