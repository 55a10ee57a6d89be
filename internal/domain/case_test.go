package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMilestone_Defaults(t *testing.T) {
	m := NewMilestone(MilestoneInput{
		Title:       "Initial consultation",
		Description: "Review documents",
		Amount:      150,
	})

	assert.NotEmpty(t, m.MilestoneID)
	assert.Equal(t, MilestonePending, m.Status)
	assert.Nil(t, m.CompletedAt)
	assert.False(t, m.CreatedAt.IsZero())

	other := NewMilestone(MilestoneInput{Title: "Other", Description: "x"})
	assert.NotEqual(t, m.MilestoneID, other.MilestoneID)
}

func TestValidateMilestoneInput_CollectsAllProblems(t *testing.T) {
	errs := ValidateMilestoneInput(MilestoneInput{
		Title:       "   ",
		Description: "",
		Amount:      -10,
	})

	require.Len(t, errs, 3)
	assert.Contains(t, errs, "Title is required")
	assert.Contains(t, errs, "Description is required")
	assert.Contains(t, errs, "Amount cannot be negative")
}

func TestValidateMilestoneInput_ZeroAmountAllowed(t *testing.T) {
	errs := ValidateMilestoneInput(MilestoneInput{
		Title:       "Pro bono review",
		Description: "No charge",
		Amount:      0,
	})
	assert.Empty(t, errs)
}

func TestApplyMilestonePatch_CompletedAtOnFirstCompletion(t *testing.T) {
	m := NewMilestone(MilestoneInput{Title: "File petition", Description: "Court filing", Amount: 500})

	completed := MilestoneCompleted
	m = ApplyMilestonePatch(m, MilestonePatch{Status: &completed})
	require.NotNil(t, m.CompletedAt)
	first := *m.CompletedAt

	// Completing again must not move the timestamp.
	time.Sleep(2 * time.Millisecond)
	m = ApplyMilestonePatch(m, MilestonePatch{Status: &completed})
	assert.Equal(t, first, *m.CompletedAt)
}

func TestApplyMilestonePatch_PartialFields(t *testing.T) {
	m := NewMilestone(MilestoneInput{Title: "Draft", Description: "First draft", Amount: 100})

	newAmount := 250.0
	patched := ApplyMilestonePatch(m, MilestonePatch{Amount: &newAmount})

	assert.Equal(t, 250.0, patched.Amount)
	assert.Equal(t, "Draft", patched.Title)
	assert.Equal(t, "First draft", patched.Description)
	assert.Equal(t, MilestonePending, patched.Status)
}

func TestCase_Stats(t *testing.T) {
	c := Case{
		Milestones: []Milestone{
			{MilestoneID: "a", Amount: 100.25, Status: MilestoneCompleted},
			{MilestoneID: "b", Amount: 200.25, Status: MilestoneCompleted},
			{MilestoneID: "c", Amount: 50.00, Status: MilestonePending},
		},
	}

	s := c.Stats()
	assert.Equal(t, 3, s.TotalMilestones)
	assert.Equal(t, 2, s.CompletedMilestones)
	assert.Equal(t, 1, s.PendingMilestones)
	assert.Equal(t, 350.50, s.TotalAmount)
	assert.Equal(t, 67, s.ProgressPercentage)
}

func TestCase_Stats_Empty(t *testing.T) {
	c := Case{}
	s := c.Stats()
	assert.Equal(t, 0, s.TotalMilestones)
	assert.Equal(t, 0, s.ProgressPercentage)
	assert.Equal(t, 0.0, s.TotalAmount)
}

func TestCase_RemoveMilestone_Idempotent(t *testing.T) {
	c := Case{
		Milestones: []Milestone{
			{MilestoneID: "keep-1"},
			{MilestoneID: "drop"},
			{MilestoneID: "keep-2"},
		},
	}

	c.RemoveMilestone("drop")
	require.Len(t, c.Milestones, 2)
	assert.Equal(t, "keep-1", c.Milestones[0].MilestoneID)
	assert.Equal(t, "keep-2", c.Milestones[1].MilestoneID)

	c.RemoveMilestone("drop")
	c.RemoveMilestone("never-existed")
	assert.Len(t, c.Milestones, 2)
}

func TestCase_UpdateMilestoneIn_UnknownID(t *testing.T) {
	c := Case{Milestones: []Milestone{{MilestoneID: "a", Title: "A"}}}

	title := "changed"
	_, ok := c.UpdateMilestoneIn("missing", MilestonePatch{Title: &title})
	assert.False(t, ok)
	assert.Equal(t, "A", c.Milestones[0].Title)
}

func TestCase_Validate_AggregatesMilestoneProblems(t *testing.T) {
	c := Case{
		ClientID:        1,
		CaseTitle:       "Contract dispute",
		CaseDescription: "Supplier failed to deliver",
		Milestones: []Milestone{
			{Title: "ok", Description: "fine", Amount: 10},
			{Title: "", Description: "missing title", Amount: -5},
		},
	}

	errs := c.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs, "Milestone 2: Title is required")
	assert.Contains(t, errs, "Milestone 2: Amount cannot be negative")
}

func TestCase_Validate_RequiredFields(t *testing.T) {
	c := Case{}
	errs := c.Validate()
	assert.Contains(t, errs, "Case title is required")
	assert.Contains(t, errs, "Case description is required")
	assert.Contains(t, errs, "Client ID is required")
}

func TestMilestones_JSONRoundTrip_PreservesOrder(t *testing.T) {
	c := Case{
		Milestones: []Milestone{
			NewMilestone(MilestoneInput{Title: "first", Description: "1", Amount: 1}),
			NewMilestone(MilestoneInput{Title: "second", Description: "2", Amount: 2}),
			NewMilestone(MilestoneInput{Title: "third", Description: "3", Amount: 3}),
		},
	}

	raw, err := json.Marshal(c.Milestones)
	require.NoError(t, err)

	var back []Milestone
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Len(t, back, 3)
	for i := range back {
		assert.Equal(t, c.Milestones[i].MilestoneID, back[i].MilestoneID)
		assert.Equal(t, c.Milestones[i].Title, back[i].Title)
	}
}
