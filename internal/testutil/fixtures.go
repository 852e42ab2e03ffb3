package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/agencyops/internal/domain"
)

var testNameCounter atomic.Int64

func nextName(prefix string) string {
	return fmt.Sprintf("%s %02d", prefix, testNameCounter.Add(1))
}

// Upcoming project options
type UpcomingOption func(*domain.UpcomingProject)

func WithBudget(b float64) UpcomingOption {
	return func(p *domain.UpcomingProject) {
		p.Budget = b
	}
}

func WithPriority(pr domain.UpcomingPriority) UpcomingOption {
	return func(p *domain.UpcomingProject) {
		p.Priority = pr
	}
}

func WithStartDate(d string) UpcomingOption {
	return func(p *domain.UpcomingProject) {
		p.StartDate = domain.MustParseDate(d)
	}
}

func WithRequiredTeam(labels ...string) UpcomingOption {
	return func(p *domain.UpcomingProject) {
		p.RequiredTeam = domain.Team(labels)
	}
}

func WithClient(c string) UpcomingOption {
	return func(p *domain.UpcomingProject) {
		p.Client = c
	}
}

func NewTestUpcoming(name string, opts ...UpcomingOption) domain.UpcomingProject {
	if name == "" {
		name = nextName("Project")
	}
	p := domain.UpcomingProject{
		Name:          name,
		Client:        "Acme",
		BusinessValue: "New revenue line",
		Priority:      domain.UpcomingMedium,
		StartDate:     domain.MustParseDate("2026-11-01"),
		Duration:      "3 months",
		Budget:        100000,
		RequiredTeam:  domain.Team{"Backend", "Design"},
		Status:        domain.StatusProposalSent,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// On-development project options
type OnDevelopmentOption func(*domain.OnDevelopmentProject)

func WithProgress(n int) OnDevelopmentOption {
	return func(p *domain.OnDevelopmentProject) {
		p.Progress = n
	}
}

func WithManager(m string) OnDevelopmentOption {
	return func(p *domain.OnDevelopmentProject) {
		p.Manager = m
	}
}

func WithHealth(h domain.Health) OnDevelopmentOption {
	return func(p *domain.OnDevelopmentProject) {
		p.Health = h
	}
}

func NewTestOnDevelopment(name string, opts ...OnDevelopmentOption) domain.OnDevelopmentProject {
	if name == "" {
		name = nextName("Build")
	}
	p := domain.OnDevelopmentProject{
		Name:     name,
		Manager:  "Sita",
		Deadline: domain.MustParseDate("2026-12-15"),
		Health:   domain.HealthGreen,
		Progress: 40,
		Priority: domain.DevelopmentHigh,
		Details: domain.DevelopmentDetails{
			CurrentPhase:    "Build",
			TimeSpent:       120,
			TimeBudgeted:    300,
			MilestoneStatus: "Beta",
			AssignedTeam:    domain.Team{"Ram", "Hari"},
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func NewTestCompleted(name string) domain.CompletedProject {
	if name == "" {
		name = nextName("Shipped")
	}
	return domain.CompletedProject{
		Name:              name,
		Manager:           "Sita",
		CompletionDate:    domain.MustParseDate("2026-09-30"),
		FinalDeliveryDate: domain.MustParseDate("2026-10-02"),
		BillingStatus:     domain.BillingInvoiceSent,
		DeploymentStatus:  domain.DeploymentLive,
		ReviewStatus:      domain.ReviewScheduled,
	}
}

func NewTestOperationalBudget(category string, amount float64) domain.OperationalBudget {
	return domain.OperationalBudget{
		Name:     nextName(category),
		Category: category,
		Amount:   amount,
		Date:     domain.MustParseDate("2026-10-01"),
	}
}

func NewTestExpense(category string, amount float64) domain.Expense {
	return domain.Expense{
		Date:        domain.MustParseDate("2026-10-05"),
		Category:    category,
		Description: nextName(category),
		Amount:      amount,
		PaymentType: domain.PaymentOnline,
	}
}
