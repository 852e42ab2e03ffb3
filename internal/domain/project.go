package domain

import "fmt"

// UpcomingProject is a pipeline project that has not started development.
type UpcomingProject struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	Client        string           `json:"client"`
	BusinessValue string           `json:"businessValue"`
	Priority      UpcomingPriority `json:"priority"`
	StartDate     Date             `json:"startDate"`
	Duration      string           `json:"duration"`
	Budget        float64          `json:"budget"`
	RequiredTeam  Team             `json:"requiredTeam"`
	Status        UpcomingStatus   `json:"status"`
	ProposalLink  string           `json:"proposalLink"`
}

func (p *UpcomingProject) Validate() error {
	if !p.Priority.Valid() {
		return invalid("priority", fmt.Sprintf("unknown priority %q", p.Priority))
	}
	if !p.Status.Valid() {
		return invalid("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	return firstErr(
		requireText("name", p.Name),
		requireText("client", p.Client),
		requireDate("startDate", p.StartDate),
		requireNonNegative("budget", p.Budget),
	)
}

// OnDevelopmentProject is a project under active development.
type OnDevelopmentProject struct {
	ID       string              `json:"id,omitempty"`
	Name     string              `json:"name"`
	Manager  string              `json:"manager"`
	Deadline Date                `json:"deadline"`
	Health   Health              `json:"health"`
	Progress int                 `json:"progress"`
	Priority DevelopmentPriority `json:"priority"`
	Details  DevelopmentDetails  `json:"details"`
}

type DevelopmentDetails struct {
	CurrentPhase    string  `json:"currentPhase"`
	TimeSpent       float64 `json:"timeSpent"`
	TimeBudgeted    float64 `json:"timeBudgeted"`
	MilestoneStatus string  `json:"milestoneStatus"`
	Blockers        int     `json:"blockers"`
	AssignedTeam    Team    `json:"assignedTeam"`
	StatusNotes     string  `json:"statusNotes"`
}

func (p *OnDevelopmentProject) Validate() error {
	if !p.Health.Valid() {
		return invalid("health", fmt.Sprintf("unknown health %q", p.Health))
	}
	if !p.Priority.Valid() {
		return invalid("priority", fmt.Sprintf("unknown priority %q", p.Priority))
	}
	if p.Progress < 0 || p.Progress > 100 {
		return invalid("progress", fmt.Sprintf("must be between 0 and 100 (got %d)", p.Progress))
	}
	if p.Details.Blockers < 0 {
		return invalid("details.blockers", fmt.Sprintf("must not be negative (got %d)", p.Details.Blockers))
	}
	return firstErr(
		requireText("name", p.Name),
		requireText("manager", p.Manager),
		requireDate("deadline", p.Deadline),
		requireNonNegative("details.timeSpent", p.Details.TimeSpent),
		requireNonNegative("details.timeBudgeted", p.Details.TimeBudgeted),
	)
}

// CompletedProject is the terminal lifecycle record.
type CompletedProject struct {
	ID                string           `json:"id,omitempty"`
	Name              string           `json:"name"`
	Manager           string           `json:"manager"`
	CompletionDate    Date             `json:"completionDate"`
	FinalDeliveryDate Date             `json:"finalDeliveryDate"`
	BillingStatus     BillingStatus    `json:"billingStatus"`
	DeploymentStatus  DeploymentStatus `json:"deploymentStatus"`
	ReviewStatus      ReviewStatus     `json:"reviewStatus"`
}

func (p *CompletedProject) Validate() error {
	if !p.BillingStatus.Valid() {
		return invalid("billingStatus", fmt.Sprintf("unknown billing status %q", p.BillingStatus))
	}
	if !p.DeploymentStatus.Valid() {
		return invalid("deploymentStatus", fmt.Sprintf("unknown deployment status %q", p.DeploymentStatus))
	}
	if !p.ReviewStatus.Valid() {
		return invalid("reviewStatus", fmt.Sprintf("unknown review status %q", p.ReviewStatus))
	}
	return firstErr(
		requireText("name", p.Name),
		requireText("manager", p.Manager),
		requireDate("completionDate", p.CompletionDate),
		requireDate("finalDeliveryDate", p.FinalDeliveryDate),
	)
}
