package lifecycle

import (
	"testing"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPriority(t *testing.T) {
	tests := []struct {
		in   domain.UpcomingPriority
		want domain.DevelopmentPriority
	}{
		{domain.UpcomingCritical, domain.DevelopmentHigh},
		{domain.UpcomingHigh, domain.DevelopmentHigh},
		{domain.UpcomingMedium, domain.DevelopmentMedium},
		{domain.UpcomingLow, domain.DevelopmentLow},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := MapPriority(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := MapPriority("Urgent")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func upcoming() domain.UpcomingProject {
	return domain.UpcomingProject{
		ID:            "p-1",
		Name:          "Tourism Portal",
		Client:        "Nepal Tours",
		BusinessValue: "Bookings",
		Priority:      domain.UpcomingCritical,
		StartDate:     domain.MustParseDate("2026-11-01"),
		Duration:      "4 months",
		Budget:        75000,
		RequiredTeam:  domain.Team{"Backend", "Design"},
		Status:        domain.StatusAwaitingApproval,
	}
}

func TestPromote_MapsEveryField(t *testing.T) {
	up := upcoming()

	got, err := Promote(up)
	require.NoError(t, err)

	want := domain.OnDevelopmentProject{
		ID:       "p-1",
		Name:     "Tourism Portal",
		Manager:  "Unassigned",
		Deadline: domain.MustParseDate("2026-11-01"),
		Health:   domain.HealthGreen,
		Progress: 0,
		Priority: domain.DevelopmentHigh,
		Details: domain.DevelopmentDetails{
			CurrentPhase:    "Kick-off",
			TimeSpent:       0,
			TimeBudgeted:    75000,
			MilestoneStatus: "Project Initialized",
			Blockers:        0,
			AssignedTeam:    domain.Team{"Backend", "Design"},
			StatusNotes:     "Project moved from upcoming to ongoing.",
		},
	}
	assert.Equal(t, want, got)
	require.NoError(t, got.Validate())
}

func TestPromote_TeamIsCopied(t *testing.T) {
	up := upcoming()
	got, err := Promote(up)
	require.NoError(t, err)

	got.Details.AssignedTeam[0] = "Changed"
	assert.Equal(t, "Backend", up.RequiredTeam[0])
}

func TestPromote_NilTeamBecomesEmpty(t *testing.T) {
	up := upcoming()
	up.RequiredTeam = nil

	got, err := Promote(up)
	require.NoError(t, err)
	assert.NotNil(t, got.Details.AssignedTeam)
	assert.Empty(t, got.Details.AssignedTeam)
}

func TestPromote_UnknownPriority(t *testing.T) {
	up := upcoming()
	up.Priority = "Someday"

	_, err := Promote(up)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestComplete(t *testing.T) {
	today := domain.MustParseDate("2026-10-19")
	dev := domain.OnDevelopmentProject{
		ID:       "p-1",
		Name:     "Tourism Portal",
		Manager:  "Sita",
		Deadline: domain.MustParseDate("2026-11-01"),
		Health:   domain.HealthYellow,
		Progress: 100,
		Priority: domain.DevelopmentHigh,
	}

	got := Complete(dev, today)

	assert.Equal(t, domain.CompletedProject{
		ID:                "p-1",
		Name:              "Tourism Portal",
		Manager:           "Sita",
		CompletionDate:    today,
		FinalDeliveryDate: today,
		BillingStatus:     domain.BillingPending,
		DeploymentStatus:  domain.DeploymentStaging,
		ReviewStatus:      domain.ReviewScheduled,
	}, got)
	require.NoError(t, got.Validate())
}

func TestFind(t *testing.T) {
	working := []domain.OnDevelopmentProject{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	p, ok := Find(working, "b")
	assert.True(t, ok)
	assert.Equal(t, "B", p.Name)

	_, ok = Find(working, "c")
	assert.False(t, ok)
	_, ok = Find(nil, "a")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	for _, from := range Stages {
		for _, to := range Stages {
			want := (from == StageUpcoming && to == StageOnDevelopment) ||
				(from == StageOnDevelopment && to == StageCompleted)
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.True(t, StageCompleted.Terminal())
	assert.False(t, StageUpcoming.Terminal())
}

func TestStageCollection(t *testing.T) {
	assert.Equal(t, docstore.UpcomingProjects, StageUpcoming.Collection())
	assert.Equal(t, docstore.OnDevelopmentProjects, StageOnDevelopment.Collection())
	assert.Equal(t, docstore.CompletedProjects, StageCompleted.Collection())
}
