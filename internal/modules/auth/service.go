package auth

import (
	"context"
	"errors"
	"strings"

	"lawlink/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users   UserRepositoryInterface
	lawyers LawyerProfileWriter
	jwt     jwtService
}

func NewService(users UserRepositoryInterface, lawyers LawyerProfileWriter, jwt jwtService) *Service {
	return &Service{
		users:   users,
		lawyers: lawyers,
		jwt:     jwt,
	}
}

func (s *Service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*AuthResponse, error) {
	user, err := s.register(ctx, req.Name, req.Email, req.Password, req.Phone, domain.RoleClient)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// RegisterLawyer creates the account plus the public marketplace profile in
// one call; the profile carries everything the lawyer listing shows.
func (s *Service) RegisterLawyer(ctx context.Context, req RegisterLawyerRequest) (*AuthResponse, error) {
	user, err := s.register(ctx, req.Name, req.Email, req.Password, req.Phone, domain.RoleLawyer)
	if err != nil {
		return nil, err
	}

	profile := &domain.LawyerProfile{
		UserID:          user.ID,
		Name:            user.Name,
		Specialization:  req.Specialization,
		City:            req.City,
		YearsExperience: req.YearsExperience,
		HourlyRate:      req.HourlyRate,
		Bio:             req.Bio,
	}
	if err := s.lawyers.Create(ctx, profile); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *Service) register(ctx context.Context, name, email, password, phone string, role domain.UserRole) (*domain.User, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		Phone:        phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) issueToken(user *domain.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}
