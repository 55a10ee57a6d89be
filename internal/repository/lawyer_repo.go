package repository

import (
	"context"
	"time"

	"lawlink/internal/domain"

	"gorm.io/gorm"
)

type LawyerProfileRepository struct {
	db *gorm.DB
}

func NewLawyerProfileRepository(db *gorm.DB) *LawyerProfileRepository {
	return &LawyerProfileRepository{db: db}
}

type LawyerFilters struct {
	Specialization string
	City           string
	MinExperience  int
	Limit          int
	Offset         int
}

func (r *LawyerProfileRepository) Create(ctx context.Context, p *domain.LawyerProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *LawyerProfileRepository) GetByID(ctx context.Context, id int64) (*domain.LawyerProfile, error) {
	var p domain.LawyerProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LawyerProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.LawyerProfile, error) {
	var p domain.LawyerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LawyerProfileRepository) List(ctx context.Context, f LawyerFilters) ([]domain.LawyerProfile, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.LawyerProfile{})
	if f.Specialization != "" {
		q = q.Where("specialization = ?", f.Specialization)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MinExperience > 0 {
		q = q.Where("years_experience >= ?", f.MinExperience)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var list []domain.LawyerProfile
	err := q.Order("rating DESC, total_reviews DESC").Find(&list).Error
	return list, total, err
}

func (r *LawyerProfileRepository) Update(ctx context.Context, p *domain.LawyerProfile) error {
	p.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *LawyerProfileRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.LawyerProfile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
