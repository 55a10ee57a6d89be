package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "Pending"
	MilestoneInProgress MilestoneStatus = "In Progress"
	MilestoneCompleted  MilestoneStatus = "Completed"
)

type CaseStatus string

const (
	CaseOpen       CaseStatus = "Open"
	CaseInProgress CaseStatus = "In Progress"
	CaseClosed     CaseStatus = "Closed"
	CaseOnHold     CaseStatus = "On Hold"
)

type CasePriority string

const (
	PriorityLow    CasePriority = "Low"
	PriorityMedium CasePriority = "Medium"
	PriorityHigh   CasePriority = "High"
	PriorityUrgent CasePriority = "Urgent"
)

// Milestone is a payable sub-unit of work inside a case. Milestones have no
// independent lifecycle: they live embedded in their parent case document.
type Milestone struct {
	MilestoneID string          `json:"milestone_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Status      MilestoneStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

type Case struct {
	ID              int64        `json:"id"`
	ClientID        int64        `json:"client_id"`
	CaseTitle       string       `json:"case_title"`
	CaseDescription string       `json:"case_description"`
	// Milestones keep insertion order; the whole list is stored as one JSON
	// document column, mirroring the embedded-array shape of the case record.
	Milestones       []Milestone  `json:"milestones" gorm:"serializer:json"`
	Status           CaseStatus   `json:"status"`
	Priority         CasePriority `json:"priority"`
	AssignedLawyerID *int64       `json:"assigned_lawyer_id,omitempty"`
	Category         string       `json:"category,omitempty"`
	Tags             []string     `json:"tags,omitempty" gorm:"serializer:json"`
	Documents        []string     `json:"documents,omitempty" gorm:"serializer:json"`
	Notes            string       `json:"notes,omitempty" gorm:"type:text"`
	// Version guards milestone-array read-modify-write cycles. A write whose
	// base version is stale is rejected instead of silently overwriting.
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CaseStats are derived values, computed on read and never stored.
type CaseStats struct {
	TotalMilestones     int     `json:"total_milestones"`
	CompletedMilestones int     `json:"completed_milestones"`
	PendingMilestones   int     `json:"pending_milestones"`
	TotalAmount         float64 `json:"total_amount"`
	ProgressPercentage  int     `json:"progress_percentage"`
}

type MilestoneInput struct {
	Title       string
	Description string
	Amount      float64
	Status      MilestoneStatus
	DueDate     *time.Time
}

// MilestonePatch carries partial milestone updates; nil fields are left as is.
type MilestonePatch struct {
	Title       *string
	Description *string
	Amount      *float64
	Status      *MilestoneStatus
	DueDate     *time.Time
}

func ValidateMilestoneInput(in MilestoneInput) []string {
	var errs []string
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, "Description is required")
	}
	if in.Amount < 0 {
		errs = append(errs, "Amount cannot be negative")
	}
	return errs
}

// NewMilestone builds a milestone with a fresh id and timestamps.
// Callers validate the input first; NewMilestone only applies defaults.
func NewMilestone(in MilestoneInput) Milestone {
	now := time.Now().UTC()
	status := in.Status
	if status == "" {
		status = MilestonePending
	}
	return Milestone{
		MilestoneID: uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     in.DueDate,
	}
}

// ApplyMilestonePatch merges the patch into m and refreshes UpdatedAt.
// CompletedAt is set the first time the status reaches Completed and is
// preserved afterwards.
func ApplyMilestonePatch(m Milestone, patch MilestonePatch) Milestone {
	now := time.Now().UTC()
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Description != nil {
		m.Description = *patch.Description
	}
	if patch.Amount != nil {
		m.Amount = *patch.Amount
	}
	if patch.DueDate != nil {
		m.DueDate = patch.DueDate
	}
	if patch.Status != nil {
		if *patch.Status == MilestoneCompleted && m.Status != MilestoneCompleted {
			m.CompletedAt = &now
		}
		m.Status = *patch.Status
	}
	m.UpdatedAt = now
	return m
}

// UpdateMilestoneIn replaces the milestone with the given id inside the case's
// list. Returns false when no milestone carries that id; the case is unchanged.
func (c *Case) UpdateMilestoneIn(milestoneID string, patch MilestonePatch) (Milestone, bool) {
	for i, m := range c.Milestones {
		if m.MilestoneID == milestoneID {
			updated := ApplyMilestonePatch(m, patch)
			c.Milestones[i] = updated
			c.UpdatedAt = time.Now().UTC()
			return updated, true
		}
	}
	return Milestone{}, false
}

func (c *Case) AddMilestone(m Milestone) {
	c.Milestones = append(c.Milestones, m)
	c.UpdatedAt = time.Now().UTC()
}

// RemoveMilestone filters the milestone out by id. Removing an unknown id is
// a no-op, intentionally idempotent.
func (c *Case) RemoveMilestone(milestoneID string) {
	kept := c.Milestones[:0]
	for _, m := range c.Milestones {
		if m.MilestoneID != milestoneID {
			kept = append(kept, m)
		}
	}
	c.Milestones = kept
	c.UpdatedAt = time.Now().UTC()
}

func (c *Case) FindMilestone(milestoneID string) *Milestone {
	for i := range c.Milestones {
		if c.Milestones[i].MilestoneID == milestoneID {
			return &c.Milestones[i]
		}
	}
	return nil
}

// Stats aggregates milestone counts and amounts. Progress is 0 for a case
// without milestones.
func (c *Case) Stats() CaseStats {
	s := CaseStats{TotalMilestones: len(c.Milestones)}
	for _, m := range c.Milestones {
		s.TotalAmount += m.Amount
		switch m.Status {
		case MilestoneCompleted:
			s.CompletedMilestones++
		case MilestonePending:
			s.PendingMilestones++
		}
	}
	if s.TotalMilestones > 0 {
		s.ProgressPercentage = int(math.Round(float64(s.CompletedMilestones) / float64(s.TotalMilestones) * 100))
	}
	return s
}

// Validate returns every violated rule rather than stopping at the first, so
// a form can surface all problems at once. An empty slice means valid.
func (c *Case) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.CaseTitle) == "" {
		errs = append(errs, "Case title is required")
	}
	if strings.TrimSpace(c.CaseDescription) == "" {
		errs = append(errs, "Case description is required")
	}
	if c.ClientID == 0 {
		errs = append(errs, "Client ID is required")
	}
	for i, m := range c.Milestones {
		for _, e := range ValidateMilestoneInput(MilestoneInput{Title: m.Title, Description: m.Description, Amount: m.Amount}) {
			errs = append(errs, fmt.Sprintf("Milestone %d: %s", i+1, e))
		}
	}
	return errs
}

func (Case) TableName() string { return "cases" }
