package domain

import "time"

// LawyerProfile is the public marketplace profile backing the lawyer
// listing and detail pages. One profile per user with the lawyer role.
type LawyerProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	City            string    `json:"city,omitempty"`
	YearsExperience int       `json:"years_experience"`
	HourlyRate      float64   `json:"hourly_rate"`
	Bio             string    `json:"bio,omitempty" gorm:"type:text"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	Rating          float64   `json:"rating"`
	TotalReviews    int       `json:"total_reviews"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (LawyerProfile) TableName() string { return "lawyer_profiles" }
