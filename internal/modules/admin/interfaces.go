package admin

import (
	"context"

	"lawlink/internal/domain"
	"lawlink/internal/repository"
)

type CaseAdminRepository interface {
	List(ctx context.Context, f repository.CaseFilters) ([]domain.Case, error)
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
	Delete(ctx context.Context, id int64) error
}

type LawyerAdminRepository interface {
	List(ctx context.Context, f repository.LawyerFilters) ([]domain.LawyerProfile, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.LawyerProfile, error)
	Create(ctx context.Context, p *domain.LawyerProfile) error
	Update(ctx context.Context, p *domain.LawyerProfile) error
	Delete(ctx context.Context, id int64) error
}

type UserAdminRepository interface {
	Count(ctx context.Context, role domain.UserRole) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *domain.User) error
}
