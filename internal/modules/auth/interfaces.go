package auth

import (
	"context"

	"lawlink/internal/domain"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type LawyerProfileWriter interface {
	Create(ctx context.Context, p *domain.LawyerProfile) error
}

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}
