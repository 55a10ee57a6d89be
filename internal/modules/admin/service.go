package admin

import (
	"context"
	"errors"
	"strings"

	"lawlink/internal/domain"
	"lawlink/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Service struct {
	cases   CaseAdminRepository
	lawyers LawyerAdminRepository
	users   UserAdminRepository
}

func NewService(cases CaseAdminRepository, lawyers LawyerAdminRepository, users UserAdminRepository) *Service {
	return &Service{
		cases:   cases,
		lawyers: lawyers,
		users:   users,
	}
}

func (s *Service) ListCases(ctx context.Context, f repository.CaseFilters) ([]domain.Case, error) {
	return s.cases.List(ctx, f)
}

// DeleteCase hard-deletes a case. The admin back-office is the only place
// a case can leave the system.
func (s *Service) DeleteCase(ctx context.Context, id int64) error {
	if err := s.cases.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListLawyers(ctx context.Context, f repository.LawyerFilters) ([]domain.LawyerProfile, int64, error) {
	return s.lawyers.List(ctx, f)
}

type CreateLawyerInput struct {
	Name            string
	Email           string
	Password        string
	Specialization  string
	City            string
	YearsExperience int
	HourlyRate      float64
	Bio             string
	PhotoURL        string
}

// CreateLawyer provisions the account and the public profile in one call,
// same shape lawyer self-registration produces.
func (s *Service) CreateLawyer(ctx context.Context, in CreateLawyerInput) (*domain.LawyerProfile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleLawyer,
		Name:         in.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &domain.LawyerProfile{
		UserID:          user.ID,
		Name:            in.Name,
		Specialization:  in.Specialization,
		City:            in.City,
		YearsExperience: in.YearsExperience,
		HourlyRate:      in.HourlyRate,
		Bio:             in.Bio,
		PhotoURL:        in.PhotoURL,
	}
	if err := s.lawyers.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Service) UpdateLawyer(ctx context.Context, id int64, patch func(p *domain.LawyerProfile)) (*domain.LawyerProfile, error) {
	p, err := s.lawyers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	patch(p)
	if err := s.lawyers.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteLawyer(ctx context.Context, id int64) error {
	if err := s.lawyers.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type PlatformStats struct {
	Clients    int64 `json:"clients"`
	Lawyers    int64 `json:"lawyers"`
	TotalUsers int64 `json:"total_users"`
	TotalCases int64 `json:"total_cases"`
	OpenCases  int64 `json:"open_cases"`
}

func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	clients, err := s.users.Count(ctx, domain.RoleClient)
	if err != nil {
		return nil, err
	}
	lawyersCnt, err := s.users.Count(ctx, domain.RoleLawyer)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx, "")
	if err != nil {
		return nil, err
	}

	all, err := s.cases.List(ctx, repository.CaseFilters{})
	if err != nil {
		return nil, err
	}
	var open int64
	for _, c := range all {
		if c.Status == domain.CaseOpen {
			open++
		}
	}

	return &PlatformStats{
		Clients:    clients,
		Lawyers:    lawyersCnt,
		TotalUsers: total,
		TotalCases: int64(len(all)),
		OpenCases:  open,
	}, nil
}
