package applications

import (
	"context"
	"errors"

	"lawlink/internal/domain"
	"lawlink/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	apps   ApplicationRepository
	cases  CaseReader
	users  UserReader
	notifs NotificationSender
}

func NewService(apps ApplicationRepository, cases CaseReader, users UserReader, notifs NotificationSender) *Service {
	return &Service{
		apps:   apps,
		cases:  cases,
		users:  users,
		notifs: notifs,
	}
}

// Apply files a pending application for an open case. A lawyer holding a
// pending or accepted application for the case cannot file another one.
func (s *Service) Apply(ctx context.Context, caseID, lawyerID int64, proposal string) (*domain.Application, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	if c.Status != domain.CaseOpen {
		return nil, ErrCaseNotOpen
	}
	if c.ClientID == lawyerID {
		return nil, ErrForbidden
	}

	exists, err := s.apps.HasActiveApplication(ctx, caseID, lawyerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	lawyer, err := s.users.GetByID(ctx, lawyerID)
	if err != nil {
		return nil, err
	}

	app := &domain.Application{
		CaseID:     caseID,
		LawyerID:   lawyerID,
		LawyerName: lawyer.Name,
		Proposal:   proposal,
		Status:     domain.ApplicationPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		// Two concurrent applies can both pass the check above; the partial
		// unique index catches the second insert.
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_one_active_application" {
				return nil, ErrAlreadyApplied
			}
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyLawyerApplied(ctx, c.ClientID, c.ID, lawyer.Name)
	}
	return app, nil
}

// Approve accepts one application and, in the same atomic commit, denies all
// competing ones and assigns the lawyer to the case. Only the client who owns
// the case may approve. A concurrent approval on the same case leaves exactly
// one winner; the loser gets ErrAlreadyAssigned.
func (s *Service) Approve(ctx context.Context, caseID, applicationID, actorID int64) error {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCaseNotFound
		}
		return err
	}
	if c.ClientID != actorID {
		return ErrForbidden
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}
	if app.CaseID != caseID {
		return ErrApplicationNotFound
	}

	// Snapshot the competitors before the commit so the losers can be
	// notified afterwards without re-notifying already-denied ones.
	competitors, err := s.apps.GetByCaseID(ctx, caseID)
	if err != nil {
		return err
	}

	if err := s.apps.ApproveAndAssign(ctx, caseID, applicationID, app.LawyerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCaseAlreadyAssigned):
			return ErrAlreadyAssigned
		case errors.Is(err, repository.ErrApplicationNotPending):
			return ErrNotPending
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrApplicationNotFound
		}
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyApplicationAccepted(ctx, app.LawyerID, c.ID, c.CaseTitle)
		for _, other := range competitors {
			if other.ID != applicationID && other.Status == domain.ApplicationPending {
				_ = s.notifs.NotifyApplicationDenied(ctx, other.LawyerID, c.ID, c.CaseTitle)
			}
		}
	}
	return nil
}

// Deny moves a single pending application to denied. No case-level effect.
func (s *Service) Deny(ctx context.Context, applicationID, actorID int64) error {
	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		return err
	}

	c, err := s.cases.GetByID(ctx, app.CaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCaseNotFound
		}
		return err
	}
	if c.ClientID != actorID {
		return ErrForbidden
	}

	if err := s.apps.Deny(ctx, applicationID); err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationNotPending):
			return ErrNotPending
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrApplicationNotFound
		}
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyApplicationDenied(ctx, app.LawyerID, c.ID, c.CaseTitle)
	}
	return nil
}

// ListByCase returns the applications for a case, visible to its owner only.
func (s *Service) ListByCase(ctx context.Context, caseID, actorID int64) ([]domain.Application, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	if c.ClientID != actorID {
		return nil, ErrForbidden
	}
	return s.apps.GetByCaseID(ctx, caseID)
}

func (s *Service) ListMine(ctx context.Context, lawyerID int64) ([]domain.Application, error) {
	return s.apps.GetByLawyerID(ctx, lawyerID)
}
