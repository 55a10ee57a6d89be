package cases

import (
	"context"
	"testing"

	"lawlink/internal/domain"
	"lawlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	if c != nil {
		c.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockCaseRepository) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseRepository) GetByClientID(ctx context.Context, clientID int64) ([]domain.Case, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCaseRepository) GetByAssignedLawyerID(ctx context.Context, lawyerID int64) ([]domain.Case, error) {
	args := m.Called(ctx, lawyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCaseRepository) GetOpen(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCaseRepository) List(ctx context.Context, f repository.CaseFilters) ([]domain.Case, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCaseRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockCaseRepository) SaveMilestones(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type MockApplicationReader struct {
	mock.Mock
}

func (m *MockApplicationReader) GetByLawyerID(ctx context.Context, lawyerID int64) ([]domain.Application, error) {
	args := m.Called(ctx, lawyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyMilestoneAdded(ctx context.Context, userID, caseID int64, milestoneID, title string) error {
	args := m.Called(ctx, userID, caseID, milestoneID, title)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyMilestoneCompleted(ctx context.Context, userID, caseID int64, milestoneID, title string) error {
	args := m.Called(ctx, userID, caseID, milestoneID, title)
	return args.Error(0)
}

func TestService_CreateCase_Success(t *testing.T) {
	mockCases := new(MockCaseRepository)
	mockCases.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(mockCases, nil, nil)

	c, err := svc.CreateCase(context.Background(), 5, CreateCaseRequest{
		CaseTitle:       "Contract dispute",
		CaseDescription: "Supplier failed to deliver",
		Milestones: []MilestoneRequest{
			{Title: "Review", Description: "Read the contract", Amount: 200},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), c.ID)
	assert.Equal(t, domain.CaseOpen, c.Status)
	assert.Equal(t, domain.PriorityMedium, c.Priority)
	require.Len(t, c.Milestones, 1)
	assert.Equal(t, domain.MilestonePending, c.Milestones[0].Status)
	assert.NotEmpty(t, c.Milestones[0].MilestoneID)
	mockCases.AssertExpectations(t)
}

func TestService_CreateCase_AggregatesValidationErrors(t *testing.T) {
	mockCases := new(MockCaseRepository)
	svc := NewService(mockCases, nil, nil)

	_, err := svc.CreateCase(context.Background(), 5, CreateCaseRequest{
		CaseTitle:       "",
		CaseDescription: "desc",
		Priority:        "Extreme",
		Milestones: []MilestoneRequest{
			{Title: "ok", Description: "fine", Amount: -50, Status: "Done"},
		},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems, "Case title is required")
	assert.Contains(t, verr.Problems, `Invalid priority "Extreme"`)
	assert.Contains(t, verr.Problems, `Milestone 1: Invalid status "Done"`)
	assert.Contains(t, verr.Problems, "Milestone 1: Amount cannot be negative")
	mockCases.AssertNotCalled(t, "Create")
}

func TestService_ListOpenCases_ExcludesAlreadyApplied(t *testing.T) {
	mockCases := new(MockCaseRepository)
	mockApps := new(MockApplicationReader)

	mockCases.On("GetOpen", mock.Anything).Return([]domain.Case{
		{ID: 1, Status: domain.CaseOpen},
		{ID: 2, Status: domain.CaseOpen},
		{ID: 3, Status: domain.CaseOpen},
	}, nil)
	mockApps.On("GetByLawyerID", mock.Anything, int64(9)).Return([]domain.Application{
		{ID: 50, CaseID: 2, LawyerID: 9, Status: domain.ApplicationPending},
	}, nil)

	svc := NewService(mockCases, mockApps, nil)

	open, err := svc.ListOpenCases(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, int64(1), open[0].ID)
	assert.Equal(t, int64(3), open[1].ID)
}

func TestService_AddMilestone_NotifiesAssignedLawyer(t *testing.T) {
	lawyerID := int64(7)
	stored := &domain.Case{
		ID:               10,
		ClientID:         5,
		CaseTitle:        "Visa application",
		CaseDescription:  "Work visa",
		AssignedLawyerID: &lawyerID,
		Status:           domain.CaseInProgress,
	}

	mockCases := new(MockCaseRepository)
	mockNotifs := new(MockNotificationSender)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)
	mockCases.On("SaveMilestones", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyMilestoneAdded", mock.Anything, lawyerID, int64(10), mock.Anything, "Document collection").Return(nil)

	svc := NewService(mockCases, nil, mockNotifs)

	c, err := svc.AddMilestone(context.Background(), 10, 5, MilestoneRequest{
		Title:       "Document collection",
		Description: "Gather passports and contracts",
		Amount:      100,
	})

	require.NoError(t, err)
	require.Len(t, c.Milestones, 1)
	mockNotifs.AssertExpectations(t)
}

func TestService_AddMilestone_ForbiddenForOtherClient(t *testing.T) {
	stored := &domain.Case{ID: 10, ClientID: 5}
	mockCases := new(MockCaseRepository)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)

	svc := NewService(mockCases, nil, nil)

	_, err := svc.AddMilestone(context.Background(), 10, 6, MilestoneRequest{
		Title:       "Sneaky",
		Description: "Should not pass",
	})

	assert.ErrorIs(t, err, ErrForbidden)
	mockCases.AssertNotCalled(t, "SaveMilestones")
}

func TestService_UpdateMilestone_UnknownID(t *testing.T) {
	stored := &domain.Case{
		ID:       10,
		ClientID: 5,
		Milestones: []domain.Milestone{
			{MilestoneID: "m1", Title: "A", Description: "a", Status: domain.MilestonePending},
		},
	}
	mockCases := new(MockCaseRepository)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)

	svc := NewService(mockCases, nil, nil)

	status := string(domain.MilestoneCompleted)
	_, err := svc.UpdateMilestone(context.Background(), 10, 5, "missing", UpdateMilestoneRequest{Status: &status})

	assert.ErrorIs(t, err, ErrMilestoneNotFound)
	mockCases.AssertNotCalled(t, "SaveMilestones")
}

func TestService_UpdateMilestone_CompletionNotifiesBothParties(t *testing.T) {
	lawyerID := int64(7)
	stored := &domain.Case{
		ID:               10,
		ClientID:         5,
		AssignedLawyerID: &lawyerID,
		Milestones: []domain.Milestone{
			{MilestoneID: "m1", Title: "File petition", Description: "x", Status: domain.MilestoneInProgress},
		},
	}
	mockCases := new(MockCaseRepository)
	mockNotifs := new(MockNotificationSender)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)
	mockCases.On("SaveMilestones", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyMilestoneCompleted", mock.Anything, int64(5), int64(10), "m1", "File petition").Return(nil)
	mockNotifs.On("NotifyMilestoneCompleted", mock.Anything, lawyerID, int64(10), "m1", "File petition").Return(nil)

	svc := NewService(mockCases, nil, mockNotifs)

	status := string(domain.MilestoneCompleted)
	c, err := svc.UpdateMilestone(context.Background(), 10, 5, "m1", UpdateMilestoneRequest{Status: &status})

	require.NoError(t, err)
	require.NotNil(t, c.Milestones[0].CompletedAt)
	mockNotifs.AssertExpectations(t)
}

func TestService_RemoveMilestone_RetriesOnVersionConflict(t *testing.T) {
	stored := &domain.Case{
		ID:       10,
		ClientID: 5,
		Milestones: []domain.Milestone{
			{MilestoneID: "m1", Title: "A", Description: "a"},
		},
	}
	mockCases := new(MockCaseRepository)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)
	mockCases.On("SaveMilestones", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict).Once()
	mockCases.On("SaveMilestones", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewService(mockCases, nil, nil)

	_, err := svc.RemoveMilestone(context.Background(), 10, 5, "ghost")
	require.NoError(t, err)
	mockCases.AssertNumberOfCalls(t, "SaveMilestones", 2)
}

func TestService_RemoveMilestone_GivesUpAfterRetries(t *testing.T) {
	stored := &domain.Case{ID: 10, ClientID: 5}
	mockCases := new(MockCaseRepository)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)
	mockCases.On("SaveMilestones", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict)

	svc := NewService(mockCases, nil, nil)

	_, err := svc.RemoveMilestone(context.Background(), 10, 5, "ghost")
	assert.ErrorIs(t, err, ErrConflict)
	mockCases.AssertNumberOfCalls(t, "SaveMilestones", saveRetries)
}

func TestService_UpdateCase_ValidatesStatus(t *testing.T) {
	stored := &domain.Case{ID: 10, ClientID: 5, CaseTitle: "t", CaseDescription: "d"}
	mockCases := new(MockCaseRepository)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)

	svc := NewService(mockCases, nil, nil)

	bad := "Archived"
	_, err := svc.UpdateCase(context.Background(), 10, 5, UpdateCaseRequest{Status: &bad})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Problems, `Invalid status "Archived"`)
	mockCases.AssertNotCalled(t, "UpdateFields")
}

func TestService_UpdateCase_PersistsTags(t *testing.T) {
	stored := &domain.Case{ID: 10, ClientID: 5, CaseTitle: "t", CaseDescription: "d"}
	mockCases := new(MockCaseRepository)
	mockCases.On("GetByID", mock.Anything, int64(10)).Return(stored, nil)

	var written map[string]any
	mockCases.On("UpdateFields", mock.Anything, int64(10), mock.Anything).
		Run(func(args mock.Arguments) {
			written = args.Get(2).(map[string]any)
		}).
		Return(nil)

	svc := NewService(mockCases, nil, nil)

	_, err := svc.UpdateCase(context.Background(), 10, 5, UpdateCaseRequest{
		Tags: []string{"contract", "urgent"},
	})

	require.NoError(t, err)
	require.Contains(t, written, "tags")
	assert.Equal(t, []string{"contract", "urgent"}, written["tags"])
}
