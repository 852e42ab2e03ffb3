package service

import (
	"context"

	"github.com/alexanderramin/agencyops/internal/aggregate"
	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/importer"
)

// Store is the document store as seen by the services.
type Store interface {
	docstore.Docs
	docstore.Transactor
	docstore.Viewer
}

// IntakeService manages pipeline projects before promotion.
type IntakeService interface {
	Create(ctx context.Context, p *domain.UpcomingProject) error
	GetByID(ctx context.Context, id string) (*domain.UpcomingProject, error)
	List(ctx context.Context) ([]*domain.UpcomingProject, error)
	Update(ctx context.Context, id string, patch domain.UpcomingPatch) (*domain.UpcomingProject, error)
	Delete(ctx context.Context, id string) error
}

// LifecycleService runs the two forward transitions. Each transition writes
// the successor and removes the source in one transaction.
type LifecycleService interface {
	Promote(ctx context.Context, id string) (*domain.OnDevelopmentProject, error)
	// Complete finishes the project with id as it appears in working. It
	// returns nil, nil when working has no such project.
	Complete(ctx context.Context, id string, working []domain.OnDevelopmentProject) (*domain.CompletedProject, error)
}

// ProjectService edits and removes projects in the later lifecycle stages.
type ProjectService interface {
	GetOnDevelopment(ctx context.Context, id string) (*domain.OnDevelopmentProject, error)
	ListOnDevelopment(ctx context.Context) ([]*domain.OnDevelopmentProject, error)
	UpdateOnDevelopment(ctx context.Context, id string, patch domain.OnDevelopmentPatch) (*domain.OnDevelopmentProject, error)
	DeleteOnDevelopment(ctx context.Context, id string) error

	GetCompleted(ctx context.Context, id string) (*domain.CompletedProject, error)
	ListCompleted(ctx context.Context) ([]*domain.CompletedProject, error)
	UpdateCompleted(ctx context.Context, id string, patch domain.CompletedPatch) (*domain.CompletedProject, error)
	DeleteCompleted(ctx context.Context, id string) error
}

type BudgetService interface {
	Create(ctx context.Context, b *domain.OperationalBudget) error
	List(ctx context.Context) ([]*domain.OperationalBudget, error)
	Delete(ctx context.Context, id string) error
	// Lines is the combined project and operational budget ledger.
	Lines(ctx context.Context) ([]aggregate.BudgetLine, error)
}

type ExpenseService interface {
	Create(ctx context.Context, e *domain.Expense) error
	List(ctx context.Context) ([]*domain.Expense, error)
	UpdateDescription(ctx context.Context, id, description string) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
}

// DashboardService computes a one-off dashboard from the stored collections.
type DashboardService interface {
	Snapshot(ctx context.Context) (*app.DashboardView, error)
}

// TransferService moves whole stores in and out as bundles.
type TransferService interface {
	// Import validates the bundle and writes every record in one transaction.
	// Records with an id replace the stored document of that id.
	Import(ctx context.Context, b *importer.Bundle) (*ImportResult, error)
	Export(ctx context.Context) (*importer.Bundle, error)
}

// ImportResult counts written records per collection.
type ImportResult struct {
	Written  map[docstore.Collection]int
	Created  int
	Replaced int
}
