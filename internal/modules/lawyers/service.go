package lawyers

import (
	"context"
	"errors"

	"lawlink/internal/domain"
	"lawlink/internal/repository"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("lawyer not found")

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.LawyerProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.LawyerProfile, error)
	List(ctx context.Context, f repository.LawyerFilters) ([]domain.LawyerProfile, int64, error)
	Update(ctx context.Context, p *domain.LawyerProfile) error
}

type Service struct {
	profiles ProfileRepository
}

func NewService(profiles ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

func (s *Service) List(ctx context.Context, q ListLawyersQuery) (*ListLawyersResponse, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, total, err := s.profiles.List(ctx, repository.LawyerFilters{
		Specialization: q.Specialization,
		City:           q.City,
		MinExperience:  q.MinExperience,
		Limit:          limit,
		Offset:         q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ListLawyersResponse{Lawyers: list, Total: total}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.LawyerProfile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// UpdateOwnProfile lets a lawyer edit their marketplace profile.
func (s *Service) UpdateOwnProfile(ctx context.Context, userID int64, patch func(p *domain.LawyerProfile)) (*domain.LawyerProfile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	patch(p)
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
