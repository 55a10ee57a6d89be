package applications

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
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	args := m.Called(ctx, a)
	if a != nil {
		a.ID = 77 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetByCaseID(ctx context.Context, caseID int64) ([]domain.Application, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) GetByLawyerID(ctx context.Context, lawyerID int64) ([]domain.Application, error) {
	args := m.Called(ctx, lawyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) HasActiveApplication(ctx context.Context, caseID, lawyerID int64) (bool, error) {
	args := m.Called(ctx, caseID, lawyerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) Deny(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicationRepository) ApproveAndAssign(ctx context.Context, caseID, applicationID, lawyerID int64) error {
	args := m.Called(ctx, caseID, applicationID, lawyerID)
	return args.Error(0)
}

type MockCaseReader struct {
	mock.Mock
}

func (m *MockCaseReader) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyLawyerApplied(ctx context.Context, clientID, caseID int64, lawyerName string) error {
	args := m.Called(ctx, clientID, caseID, lawyerName)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyApplicationAccepted(ctx context.Context, lawyerID, caseID int64, caseTitle string) error {
	args := m.Called(ctx, lawyerID, caseID, caseTitle)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyApplicationDenied(ctx context.Context, lawyerID, caseID int64, caseTitle string) error {
	args := m.Called(ctx, lawyerID, caseID, caseTitle)
	return args.Error(0)
}

func openCase(id, clientID int64) *domain.Case {
	return &domain.Case{
		ID:              id,
		ClientID:        clientID,
		CaseTitle:       "Contract dispute",
		CaseDescription: "Supplier failed to deliver",
		Status:          domain.CaseOpen,
	}
}

func TestService_Apply_Success(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)
	mockUsers := new(MockUserReader)
	mockNotifs := new(MockNotificationSender)

	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)
	mockApps.On("HasActiveApplication", mock.Anything, int64(1), int64(9)).Return(false, nil)
	mockUsers.On("GetByID", mock.Anything, int64(9)).Return(&domain.User{ID: 9, Name: "Aigerim Bekova", Role: domain.RoleLawyer}, nil)
	mockApps.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockNotifs.On("NotifyLawyerApplied", mock.Anything, int64(5), int64(1), "Aigerim Bekova").Return(nil)

	svc := NewService(mockApps, mockCases, mockUsers, mockNotifs)

	app, err := svc.Apply(context.Background(), 1, 9, "I can take this case.")
	require.NoError(t, err)
	assert.Equal(t, int64(77), app.ID)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, "Aigerim Bekova", app.LawyerName)
	mockNotifs.AssertExpectations(t)
}

func TestService_Apply_CaseNotOpen(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)

	c := openCase(1, 5)
	c.Status = domain.CaseInProgress
	mockCases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)

	svc := NewService(mockApps, mockCases, nil, nil)

	_, err := svc.Apply(context.Background(), 1, 9, "too late")
	assert.ErrorIs(t, err, ErrCaseNotOpen)
	mockApps.AssertNotCalled(t, "Create")
}

func TestService_Apply_DuplicateRejected(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)

	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)
	mockApps.On("HasActiveApplication", mock.Anything, int64(1), int64(9)).Return(true, nil)

	svc := NewService(mockApps, mockCases, nil, nil)

	_, err := svc.Apply(context.Background(), 1, 9, "again")
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	mockApps.AssertNotCalled(t, "Create")
}

func TestService_Approve_AcceptsOneAndDeniesRest(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)
	mockNotifs := new(MockNotificationSender)

	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)
	mockApps.On("GetByID", mock.Anything, int64(30)).Return(&domain.Application{
		ID: 30, CaseID: 1, LawyerID: 9, Status: domain.ApplicationPending,
	}, nil)
	mockApps.On("GetByCaseID", mock.Anything, int64(1)).Return([]domain.Application{
		{ID: 30, CaseID: 1, LawyerID: 9, Status: domain.ApplicationPending},
		{ID: 31, CaseID: 1, LawyerID: 11, Status: domain.ApplicationPending},
		{ID: 32, CaseID: 1, LawyerID: 12, Status: domain.ApplicationDenied},
	}, nil)
	mockApps.On("ApproveAndAssign", mock.Anything, int64(1), int64(30), int64(9)).Return(nil)
	mockNotifs.On("NotifyApplicationAccepted", mock.Anything, int64(9), int64(1), "Contract dispute").Return(nil)
	// Only the still-pending competitor is notified; 32 was denied earlier.
	mockNotifs.On("NotifyApplicationDenied", mock.Anything, int64(11), int64(1), "Contract dispute").Return(nil)

	svc := NewService(mockApps, mockCases, nil, mockNotifs)

	err := svc.Approve(context.Background(), 1, 30, 5)
	require.NoError(t, err)
	mockNotifs.AssertExpectations(t)
	mockNotifs.AssertNumberOfCalls(t, "NotifyApplicationDenied", 1)
}

func TestService_Approve_OnlyOwnerMayApprove(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)

	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)

	svc := NewService(mockApps, mockCases, nil, nil)

	err := svc.Approve(context.Background(), 1, 30, 6)
	assert.ErrorIs(t, err, ErrForbidden)
	mockApps.AssertNotCalled(t, "ApproveAndAssign")
}

func TestService_Approve_SecondApprovalLoses(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)

	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)
	mockApps.On("GetByID", mock.Anything, int64(31)).Return(&domain.Application{
		ID: 31, CaseID: 1, LawyerID: 11, Status: domain.ApplicationPending,
	}, nil)
	mockApps.On("GetByCaseID", mock.Anything, int64(1)).Return([]domain.Application{}, nil)
	mockApps.On("ApproveAndAssign", mock.Anything, int64(1), int64(31), int64(11)).
		Return(repository.ErrCaseAlreadyAssigned)

	svc := NewService(mockApps, mockCases, nil, nil)

	err := svc.Approve(context.Background(), 1, 31, 5)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestService_Approve_ApplicationFromOtherCase(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)

	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)
	mockApps.On("GetByID", mock.Anything, int64(40)).Return(&domain.Application{
		ID: 40, CaseID: 2, LawyerID: 9, Status: domain.ApplicationPending,
	}, nil)

	svc := NewService(mockApps, mockCases, nil, nil)

	err := svc.Approve(context.Background(), 1, 40, 5)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
	mockApps.AssertNotCalled(t, "ApproveAndAssign")
}

func TestService_Deny_NonPendingRejected(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)

	mockApps.On("GetByID", mock.Anything, int64(30)).Return(&domain.Application{
		ID: 30, CaseID: 1, LawyerID: 9, Status: domain.ApplicationAccepted,
	}, nil)
	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)
	mockApps.On("Deny", mock.Anything, int64(30)).Return(repository.ErrApplicationNotPending)

	svc := NewService(mockApps, mockCases, nil, nil)

	err := svc.Deny(context.Background(), 30, 5)
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestService_ListByCase_OwnerOnly(t *testing.T) {
	mockApps := new(MockApplicationRepository)
	mockCases := new(MockCaseReader)

	mockCases.On("GetByID", mock.Anything, int64(1)).Return(openCase(1, 5), nil)

	svc := NewService(mockApps, mockCases, nil, nil)

	_, err := svc.ListByCase(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrForbidden)
	mockApps.AssertNotCalled(t, "GetByCaseID")
}
