package auth

import "lawlink/internal/domain"

type RegisterClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type RegisterLawyerRequest struct {
	Name            string  `json:"name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	Phone           string  `json:"phone"`
	Specialization  string  `json:"specialization" binding:"required"`
	City            string  `json:"city"`
	YearsExperience int     `json:"years_experience"`
	HourlyRate      float64 `json:"hourly_rate"`
	Bio             string  `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
