package repository

import (
	"context"
	"encoding/json"
	"time"

	"lawlink/internal/domain"

	"gorm.io/gorm"
)

type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

type CaseFilters struct {
	Status   string
	Priority string
	Category string
	Limit    int
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CaseRepository) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	var c domain.Case
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepository) GetByClientID(ctx context.Context, clientID int64) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) GetByAssignedLawyerID(ctx context.Context, lawyerID int64) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.WithContext(ctx).
		Where("assigned_lawyer_id = ?", lawyerID).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) GetOpen(ctx context.Context) ([]domain.Case, error) {
	var cases []domain.Case
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.CaseOpen).
		Order("created_at DESC").
		Find(&cases).Error
	return cases, err
}

func (r *CaseRepository) List(ctx context.Context, f CaseFilters) ([]domain.Case, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var cases []domain.Case
	err := q.Find(&cases).Error
	return cases, err
}

// UpdateFields applies a partial update of plain case columns (title,
// description, status, category...). Milestone changes go through
// SaveMilestones so they stay under version control.
func (r *CaseRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&domain.Case{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveMilestones writes back the milestone array read at c.Version. The write
// only lands if no one else bumped the version in between; a stale base
// returns ErrVersionConflict and the caller re-reads and retries or reports.
func (r *CaseRepository) SaveMilestones(ctx context.Context, c *domain.Case) error {
	raw, err := json.Marshal(c.Milestones)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&domain.Case{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Updates(map[string]any{
			"milestones": string(raw),
			"updated_at": time.Now().UTC(),
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	c.Version++
	return nil
}

func (r *CaseRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Case{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
