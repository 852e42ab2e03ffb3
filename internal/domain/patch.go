package domain

// Patches carry only the fields a caller wants to change. Nil fields are
// left untouched, and the JSON encoding of a patch omits them, so the same
// value drives both the in-memory merge (for validation) and the stored merge.

type UpcomingPatch struct {
	Name          *string           `json:"name,omitempty"`
	Client        *string           `json:"client,omitempty"`
	BusinessValue *string           `json:"businessValue,omitempty"`
	Priority      *UpcomingPriority `json:"priority,omitempty"`
	StartDate     *Date             `json:"startDate,omitempty"`
	Duration      *string           `json:"duration,omitempty"`
	Budget        *float64          `json:"budget,omitempty"`
	RequiredTeam  *Team             `json:"requiredTeam,omitempty"`
	Status        *UpcomingStatus   `json:"status,omitempty"`
	ProposalLink  *string           `json:"proposalLink,omitempty"`
}

func (p UpcomingPatch) Apply(dst *UpcomingProject) {
	assign(&dst.Name, p.Name)
	assign(&dst.Client, p.Client)
	assign(&dst.BusinessValue, p.BusinessValue)
	assign(&dst.Priority, p.Priority)
	assign(&dst.StartDate, p.StartDate)
	assign(&dst.Duration, p.Duration)
	assign(&dst.Budget, p.Budget)
	assign(&dst.RequiredTeam, p.RequiredTeam)
	assign(&dst.Status, p.Status)
	assign(&dst.ProposalLink, p.ProposalLink)
}

type OnDevelopmentPatch struct {
	Name     *string              `json:"name,omitempty"`
	Manager  *string              `json:"manager,omitempty"`
	Deadline *Date                `json:"deadline,omitempty"`
	Health   *Health              `json:"health,omitempty"`
	Progress *int                 `json:"progress,omitempty"`
	Priority *DevelopmentPriority `json:"priority,omitempty"`
	Details  *DetailsPatch        `json:"details,omitempty"`
}

// DetailsPatch merges into the nested details object field by field.
type DetailsPatch struct {
	CurrentPhase    *string  `json:"currentPhase,omitempty"`
	TimeSpent       *float64 `json:"timeSpent,omitempty"`
	TimeBudgeted    *float64 `json:"timeBudgeted,omitempty"`
	MilestoneStatus *string  `json:"milestoneStatus,omitempty"`
	Blockers        *int     `json:"blockers,omitempty"`
	AssignedTeam    *Team    `json:"assignedTeam,omitempty"`
	StatusNotes     *string  `json:"statusNotes,omitempty"`
}

func (p OnDevelopmentPatch) Apply(dst *OnDevelopmentProject) {
	assign(&dst.Name, p.Name)
	assign(&dst.Manager, p.Manager)
	assign(&dst.Deadline, p.Deadline)
	assign(&dst.Health, p.Health)
	assign(&dst.Progress, p.Progress)
	assign(&dst.Priority, p.Priority)
	if d := p.Details; d != nil {
		assign(&dst.Details.CurrentPhase, d.CurrentPhase)
		assign(&dst.Details.TimeSpent, d.TimeSpent)
		assign(&dst.Details.TimeBudgeted, d.TimeBudgeted)
		assign(&dst.Details.MilestoneStatus, d.MilestoneStatus)
		assign(&dst.Details.Blockers, d.Blockers)
		assign(&dst.Details.AssignedTeam, d.AssignedTeam)
		assign(&dst.Details.StatusNotes, d.StatusNotes)
	}
}

type CompletedPatch struct {
	Name              *string           `json:"name,omitempty"`
	Manager           *string           `json:"manager,omitempty"`
	CompletionDate    *Date             `json:"completionDate,omitempty"`
	FinalDeliveryDate *Date             `json:"finalDeliveryDate,omitempty"`
	BillingStatus     *BillingStatus    `json:"billingStatus,omitempty"`
	DeploymentStatus  *DeploymentStatus `json:"deploymentStatus,omitempty"`
	ReviewStatus      *ReviewStatus     `json:"reviewStatus,omitempty"`
}

func (p CompletedPatch) Apply(dst *CompletedProject) {
	assign(&dst.Name, p.Name)
	assign(&dst.Manager, p.Manager)
	assign(&dst.CompletionDate, p.CompletionDate)
	assign(&dst.FinalDeliveryDate, p.FinalDeliveryDate)
	assign(&dst.BillingStatus, p.BillingStatus)
	assign(&dst.DeploymentStatus, p.DeploymentStatus)
	assign(&dst.ReviewStatus, p.ReviewStatus)
}

// ExpensePatch is deliberately limited to the one mutable expense field.
type ExpensePatch struct {
	Description *string `json:"description,omitempty"`
}

func (p ExpensePatch) Apply(dst *Expense) {
	assign(&dst.Description, p.Description)
}

// Ptr returns a pointer to v, for building patches from literals.
func Ptr[T any](v T) *T {
	return &v
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
