package repository_test

import (
	"context"
	"sync"
	"testing"

	"lawlink/internal/database"
	"lawlink/internal/domain"
	"lawlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRaceDB(t *testing.T) (*gorm.DB, *repository.ApplicationRepository) {
	t.Helper()

	db, err := database.Connect("file:approve_race?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		db.Exec("DELETE FROM applications")
		db.Exec("DELETE FROM cases")
	})

	return db, repository.NewApplicationRepository(db)
}

// Two clients approving different applications on the same case at the same
// time must produce exactly one assignment.
func TestApproveAndAssign_ConcurrentApprovals(t *testing.T) {
	db, repo := setupRaceDB(t)
	ctx := context.Background()

	openCase := &domain.Case{
		ClientID:        1,
		CaseTitle:       "Contract dispute",
		CaseDescription: "Supplier walked away mid-delivery.",
		Status:          domain.CaseOpen,
		Priority:        domain.PriorityMedium,
	}
	require.NoError(t, db.WithContext(ctx).Create(openCase).Error)

	appA := &domain.Application{CaseID: openCase.ID, LawyerID: 10, LawyerName: "Aigerim Bekova", Status: domain.ApplicationPending}
	appB := &domain.Application{CaseID: openCase.ID, LawyerID: 20, LawyerName: "Dana Serikova", Status: domain.ApplicationPending}
	require.NoError(t, repo.Create(ctx, appA))
	require.NoError(t, repo.Create(ctx, appB))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	start := make(chan struct{})

	approve := func(i int, applicationID, lawyerID int64) {
		defer wg.Done()
		<-start
		errs[i] = repo.ApproveAndAssign(ctx, openCase.ID, applicationID, lawyerID)
	}

	wg.Add(2)
	go approve(0, appA.ID, appA.LawyerID)
	go approve(1, appB.ID, appB.LawyerID)
	close(start)
	wg.Wait()

	var winners int
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, repository.ErrCaseAlreadyAssigned)
		}
	}
	require.Equal(t, 1, winners)

	var c domain.Case
	require.NoError(t, db.WithContext(ctx).First(&c, openCase.ID).Error)
	assert.Equal(t, domain.CaseInProgress, c.Status)
	require.NotNil(t, c.AssignedLawyerID)

	apps, err := repo.GetByCaseID(ctx, openCase.ID)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	var accepted, denied int
	for _, a := range apps {
		switch a.Status {
		case domain.ApplicationAccepted:
			accepted++
			assert.Equal(t, a.LawyerID, *c.AssignedLawyerID)
		case domain.ApplicationDenied:
			denied++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, denied)
}
