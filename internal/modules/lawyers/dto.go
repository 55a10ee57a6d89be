package lawyers

import "lawlink/internal/domain"

type ListLawyersQuery struct {
	Specialization string `form:"specialization"`
	City           string `form:"city"`
	MinExperience  int    `form:"min_experience"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
}

type ListLawyersResponse struct {
	Lawyers []domain.LawyerProfile `json:"lawyers"`
	Total   int64                  `json:"total"`
}
