package cases

import (
	"context"

	"lawlink/internal/domain"
	"lawlink/internal/repository"
)

// CaseRepository is the storage contract the workflow needs: point lookups,
// equality queries ordered by creation time, partial field updates and a
// versioned write-back for the embedded milestone array.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
	GetByClientID(ctx context.Context, clientID int64) ([]domain.Case, error)
	GetByAssignedLawyerID(ctx context.Context, lawyerID int64) ([]domain.Case, error)
	GetOpen(ctx context.Context) ([]domain.Case, error)
	List(ctx context.Context, f repository.CaseFilters) ([]domain.Case, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	SaveMilestones(ctx context.Context, c *domain.Case) error
}

// ApplicationReader is the slice of the application store the case listing
// needs: which cases a lawyer already applied to.
type ApplicationReader interface {
	GetByLawyerID(ctx context.Context, lawyerID int64) ([]domain.Application, error)
}

// NotificationSender receives milestone transitions. Implementations are
// best-effort; the service never fails an operation on a send error.
type NotificationSender interface {
	NotifyMilestoneAdded(ctx context.Context, userID, caseID int64, milestoneID, title string) error
	NotifyMilestoneCompleted(ctx context.Context, userID, caseID int64, milestoneID, title string) error
}
