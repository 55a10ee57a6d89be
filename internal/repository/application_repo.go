package repository

import (
	"context"
	"time"

	"lawlink/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var a domain.Application
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) GetByCaseID(ctx context.Context, caseID int64) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) GetByLawyerID(ctx context.Context, lawyerID int64) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Where("lawyer_id = ?", lawyerID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// HasActiveApplication reports whether the lawyer already holds a pending or
// accepted application for the case.
func (r *ApplicationRepository) HasActiveApplication(ctx context.Context, caseID, lawyerID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("case_id = ? AND lawyer_id = ? AND status IN ?", caseID, lawyerID,
			[]domain.ApplicationStatus{domain.ApplicationPending, domain.ApplicationAccepted}).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Deny moves a pending application to denied. Applications that already left
// the pending state are immutable.
func (r *ApplicationRepository) Deny(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ? AND status = ?", id, domain.ApplicationPending).
		Updates(map[string]any{
			"status":     domain.ApplicationDenied,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrApplicationNotPending
	}
	return nil
}

// ApproveAndAssign performs the approval as one all-or-nothing commit:
// accept the target application, deny every competing one, bind the lawyer
// to the case and move it to In Progress. The case row is locked for the
// duration of the transaction so two racing approvals cannot both win;
// the loser sees the assignment and gets ErrCaseAlreadyAssigned.
func (r *ApplicationRepository) ApproveAndAssign(ctx context.Context, caseID, applicationID, lawyerID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Case
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, caseID).Error; err != nil {
			return err
		}
		if c.AssignedLawyerID != nil {
			return ErrCaseAlreadyAssigned
		}

		var app domain.Application
		if err := tx.Where("id = ? AND case_id = ?", applicationID, caseID).First(&app).Error; err != nil {
			return err
		}
		if app.Status != domain.ApplicationPending {
			return ErrApplicationNotPending
		}

		now := time.Now().UTC()

		if err := tx.Model(&domain.Application{}).
			Where("id = ?", applicationID).
			Updates(map[string]any{
				"status":     domain.ApplicationAccepted,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Application{}).
			Where("case_id = ? AND id <> ? AND status = ?", caseID, applicationID, domain.ApplicationPending).
			Updates(map[string]any{
				"status":     domain.ApplicationDenied,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Case{}).
			Where("id = ? AND assigned_lawyer_id IS NULL", caseID).
			Updates(map[string]any{
				"assigned_lawyer_id": lawyerID,
				"status":             domain.CaseInProgress,
				"updated_at":         now,
				"version":            gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCaseAlreadyAssigned
		}
		return nil
	})
}
