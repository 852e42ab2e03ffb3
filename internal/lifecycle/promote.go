package lifecycle

import (
	"fmt"

	"github.com/alexanderramin/agencyops/internal/domain"
)

// Defaults written onto a freshly promoted project.
const (
	UnassignedManager = "Unassigned"
	KickoffPhase      = "Kick-off"
	InitialMilestone  = "Project Initialized"
	PromotionNote     = "Project moved from upcoming to ongoing."
)

// MapPriority folds the four-level pipeline scale onto the three-level
// development scale. Critical and High both become High.
func MapPriority(p domain.UpcomingPriority) (domain.DevelopmentPriority, error) {
	switch p {
	case domain.UpcomingCritical, domain.UpcomingHigh:
		return domain.DevelopmentHigh, nil
	case domain.UpcomingMedium:
		return domain.DevelopmentMedium, nil
	case domain.UpcomingLow:
		return domain.DevelopmentLow, nil
	}
	return "", &domain.ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", p)}
}

// Promote maps an upcoming project onto its on-development successor. The id
// carries over unchanged.
//
// The deadline is the planned start date; the free-text duration is dropped.
// The time budget is seeded from the monetary budget, so the two share units
// until someone edits timeBudgeted.
func Promote(up domain.UpcomingProject) (domain.OnDevelopmentProject, error) {
	priority, err := MapPriority(up.Priority)
	if err != nil {
		return domain.OnDevelopmentProject{}, err
	}
	team := domain.Team{}
	if up.RequiredTeam != nil {
		team = append(team, up.RequiredTeam...)
	}
	return domain.OnDevelopmentProject{
		ID:       up.ID,
		Name:     up.Name,
		Manager:  UnassignedManager,
		Deadline: up.StartDate,
		Health:   domain.HealthGreen,
		Progress: 0,
		Priority: priority,
		Details: domain.DevelopmentDetails{
			CurrentPhase:    KickoffPhase,
			TimeSpent:       0,
			TimeBudgeted:    up.Budget,
			MilestoneStatus: InitialMilestone,
			Blockers:        0,
			AssignedTeam:    team,
			StatusNotes:     PromotionNote,
		},
	}, nil
}
