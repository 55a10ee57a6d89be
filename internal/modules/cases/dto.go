package cases

import (
	"time"

	"lawlink/internal/domain"
)

type MilestoneRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

type CreateCaseRequest struct {
	CaseTitle       string             `json:"case_title" binding:"required"`
	CaseDescription string             `json:"case_description" binding:"required"`
	Milestones      []MilestoneRequest `json:"milestones"`
	Priority        string             `json:"priority"`
	Category        string             `json:"category"`
	Tags            []string           `json:"tags"`
	Notes           string             `json:"notes"`
}

type UpdateCaseRequest struct {
	CaseTitle       *string  `json:"case_title"`
	CaseDescription *string  `json:"case_description"`
	Status          *string  `json:"status"`
	Priority        *string  `json:"priority"`
	Category        *string  `json:"category"`
	Tags            []string `json:"tags"`
	Notes           *string  `json:"notes"`
}

type UpdateMilestoneRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Amount      *float64   `json:"amount"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
}

// CaseResponse bundles the stored case with its derived stats so clients
// never have to recompute totals.
type CaseResponse struct {
	Case  *domain.Case     `json:"case"`
	Stats domain.CaseStats `json:"stats"`
}

func toCaseResponse(c *domain.Case) CaseResponse {
	return CaseResponse{Case: c, Stats: c.Stats()}
}

func toCaseResponses(list []domain.Case) []CaseResponse {
	out := make([]CaseResponse, 0, len(list))
	for i := range list {
		out = append(out, toCaseResponse(&list[i]))
	}
	return out
}
