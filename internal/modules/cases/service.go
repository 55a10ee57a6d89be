package cases

import (
	"context"
	"errors"
	"fmt"

	"lawlink/internal/domain"
	"lawlink/internal/repository"

	"gorm.io/gorm"
)

// saveRetries bounds the re-read/retry loop on a stale milestone write.
const saveRetries = 3

type Service struct {
	cases  CaseRepository
	apps   ApplicationReader
	notifs NotificationSender
}

func NewService(cases CaseRepository, apps ApplicationReader, notifs NotificationSender) *Service {
	return &Service{
		cases:  cases,
		apps:   apps,
		notifs: notifs,
	}
}

func (s *Service) CreateCase(ctx context.Context, clientID int64, req CreateCaseRequest) (*domain.Case, error) {
	var problems []string

	milestones := make([]domain.Milestone, 0, len(req.Milestones))
	for i, mr := range req.Milestones {
		if mr.Status != "" && !validMilestoneStatus(mr.Status) {
			problems = append(problems, fmt.Sprintf("Milestone %d: Invalid status %q", i+1, mr.Status))
		}
		milestones = append(milestones, domain.NewMilestone(domain.MilestoneInput{
			Title:       mr.Title,
			Description: mr.Description,
			Amount:      mr.Amount,
			Status:      domain.MilestoneStatus(mr.Status),
			DueDate:     mr.DueDate,
		}))
	}

	priority := domain.CasePriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	} else if !validCasePriority(req.Priority) {
		problems = append(problems, fmt.Sprintf("Invalid priority %q", req.Priority))
	}

	c := &domain.Case{
		ClientID:        clientID,
		CaseTitle:       req.CaseTitle,
		CaseDescription: req.CaseDescription,
		Milestones:      milestones,
		Status:          domain.CaseOpen,
		Priority:        priority,
		Category:        req.Category,
		Tags:            req.Tags,
		Notes:           req.Notes,
	}

	problems = append(problems, c.Validate()...)
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetCase(ctx context.Context, id int64) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) ListClientCases(ctx context.Context, clientID int64) ([]domain.Case, error) {
	return s.cases.GetByClientID(ctx, clientID)
}

func (s *Service) ListAssignedCases(ctx context.Context, lawyerID int64) ([]domain.Case, error) {
	return s.cases.GetByAssignedLawyerID(ctx, lawyerID)
}

// ListOpenCases returns cases a lawyer can still bid on: open cases minus the
// ones this lawyer already applied to. The store only filters by status; the
// exclusion happens here.
func (s *Service) ListOpenCases(ctx context.Context, lawyerID int64) ([]domain.Case, error) {
	open, err := s.cases.GetOpen(ctx)
	if err != nil {
		return nil, err
	}

	applied := map[int64]bool{}
	if lawyerID != 0 {
		apps, err := s.apps.GetByLawyerID(ctx, lawyerID)
		if err != nil {
			return nil, err
		}
		for _, a := range apps {
			applied[a.CaseID] = true
		}
	}

	out := make([]domain.Case, 0, len(open))
	for _, c := range open {
		if applied[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) UpdateCase(ctx context.Context, caseID, clientID int64, req UpdateCaseRequest) (*domain.Case, error) {
	c, err := s.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c.ClientID != clientID {
		return nil, ErrForbidden
	}

	var problems []string
	fields := map[string]any{}

	if req.CaseTitle != nil {
		if *req.CaseTitle == "" {
			problems = append(problems, "Case title is required")
		}
		fields["case_title"] = *req.CaseTitle
	}
	if req.CaseDescription != nil {
		if *req.CaseDescription == "" {
			problems = append(problems, "Case description is required")
		}
		fields["case_description"] = *req.CaseDescription
	}
	if req.Status != nil {
		if !validCaseStatus(*req.Status) {
			problems = append(problems, fmt.Sprintf("Invalid status %q", *req.Status))
		}
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		if !validCasePriority(*req.Priority) {
			problems = append(problems, fmt.Sprintf("Invalid priority %q", *req.Priority))
		}
		fields["priority"] = *req.Priority
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	// nil means the field was absent; an empty array clears the tags.
	if req.Tags != nil {
		fields["tags"] = req.Tags
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	if len(fields) == 0 {
		return c, nil
	}

	if err := s.cases.UpdateFields(ctx, caseID, fields); err != nil {
		return nil, err
	}
	return s.GetCase(ctx, caseID)
}

func (s *Service) AddMilestone(ctx context.Context, caseID, clientID int64, req MilestoneRequest) (*domain.Case, error) {
	in := domain.MilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Status:      domain.MilestoneStatus(req.Status),
		DueDate:     req.DueDate,
	}
	problems := domain.ValidateMilestoneInput(in)
	if req.Status != "" && !validMilestoneStatus(req.Status) {
		problems = append(problems, fmt.Sprintf("Invalid status %q", req.Status))
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	var added domain.Milestone
	c, err := s.mutateMilestones(ctx, caseID, clientID, func(c *domain.Case) error {
		added = domain.NewMilestone(in)
		c.AddMilestone(added)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil && c.AssignedLawyerID != nil {
		_ = s.notifs.NotifyMilestoneAdded(ctx, *c.AssignedLawyerID, c.ID, added.MilestoneID, added.Title)
	}
	return c, nil
}

func (s *Service) UpdateMilestone(ctx context.Context, caseID, clientID int64, milestoneID string, req UpdateMilestoneRequest) (*domain.Case, error) {
	var problems []string
	if req.Title != nil && *req.Title == "" {
		problems = append(problems, "Title is required")
	}
	if req.Description != nil && *req.Description == "" {
		problems = append(problems, "Description is required")
	}
	if req.Amount != nil && *req.Amount < 0 {
		problems = append(problems, "Amount cannot be negative")
	}
	if req.Status != nil && !validMilestoneStatus(*req.Status) {
		problems = append(problems, fmt.Sprintf("Invalid status %q", *req.Status))
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	patch := domain.MilestonePatch{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		st := domain.MilestoneStatus(*req.Status)
		patch.Status = &st
	}

	var (
		updated      domain.Milestone
		completedNow bool
	)
	c, err := s.mutateMilestones(ctx, caseID, clientID, func(c *domain.Case) error {
		prev := c.FindMilestone(milestoneID)
		if prev == nil {
			return ErrMilestoneNotFound
		}
		wasCompleted := prev.Status == domain.MilestoneCompleted
		m, _ := c.UpdateMilestoneIn(milestoneID, patch)
		updated = m
		completedNow = !wasCompleted && m.Status == domain.MilestoneCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil && completedNow {
		_ = s.notifs.NotifyMilestoneCompleted(ctx, c.ClientID, c.ID, updated.MilestoneID, updated.Title)
		if c.AssignedLawyerID != nil {
			_ = s.notifs.NotifyMilestoneCompleted(ctx, *c.AssignedLawyerID, c.ID, updated.MilestoneID, updated.Title)
		}
	}
	return c, nil
}

// RemoveMilestone is idempotent: removing an id that is not present leaves
// the case as is and reports success.
func (s *Service) RemoveMilestone(ctx context.Context, caseID, clientID int64, milestoneID string) (*domain.Case, error) {
	return s.mutateMilestones(ctx, caseID, clientID, func(c *domain.Case) error {
		c.RemoveMilestone(milestoneID)
		return nil
	})
}

// mutateMilestones runs a read-modify-write cycle over the case's milestone
// array under optimistic concurrency: read the case, apply fn, write back
// against the version we read. A concurrent writer bumps the version and the
// stale write is retried from a fresh read, a bounded number of times.
func (s *Service) mutateMilestones(ctx context.Context, caseID, clientID int64, fn func(c *domain.Case) error) (*domain.Case, error) {
	for attempt := 0; attempt < saveRetries; attempt++ {
		c, err := s.GetCase(ctx, caseID)
		if err != nil {
			return nil, err
		}
		if c.ClientID != clientID {
			return nil, ErrForbidden
		}
		if err := fn(c); err != nil {
			return nil, err
		}
		err = s.cases.SaveMilestones(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, ErrConflict
}

func validMilestoneStatus(s string) bool {
	switch domain.MilestoneStatus(s) {
	case domain.MilestonePending, domain.MilestoneInProgress, domain.MilestoneCompleted:
		return true
	}
	return false
}

func validCaseStatus(s string) bool {
	switch domain.CaseStatus(s) {
	case domain.CaseOpen, domain.CaseInProgress, domain.CaseClosed, domain.CaseOnHold:
		return true
	}
	return false
}

func validCasePriority(s string) bool {
	switch domain.CasePriority(s) {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent:
		return true
	}
	return false
}
