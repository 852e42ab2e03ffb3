package repository

import (
	"context"

	"github.com/alexanderramin/agencyops/internal/domain"
)

// Repositories are thin typed views over one docstore collection. Build them
// from a *docstore.Store for single writes or from a *docstore.Tx to take part
// in a transaction.

type UpcomingProjectRepo interface {
	Create(ctx context.Context, p *domain.UpcomingProject) error
	GetByID(ctx context.Context, id string) (*domain.UpcomingProject, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.UpcomingProject, error)
	Merge(ctx context.Context, id string, patch domain.UpcomingPatch) error
	Delete(ctx context.Context, id string) error
}

type OnDevelopmentProjectRepo interface {
	GetByID(ctx context.Context, id string) (*domain.OnDevelopmentProject, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.OnDevelopmentProject, error)
	// Put writes p under p.ID, replacing any existing document.
	Put(ctx context.Context, p *domain.OnDevelopmentProject) error
	Merge(ctx context.Context, id string, patch domain.OnDevelopmentPatch) error
	Delete(ctx context.Context, id string) error
}

type CompletedProjectRepo interface {
	GetByID(ctx context.Context, id string) (*domain.CompletedProject, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*domain.CompletedProject, error)
	Put(ctx context.Context, p *domain.CompletedProject) error
	Merge(ctx context.Context, id string, patch domain.CompletedPatch) error
	Delete(ctx context.Context, id string) error
}

type OperationalBudgetRepo interface {
	Create(ctx context.Context, b *domain.OperationalBudget) error
	GetByID(ctx context.Context, id string) (*domain.OperationalBudget, error)
	List(ctx context.Context) ([]*domain.OperationalBudget, error)
	Delete(ctx context.Context, id string) error
}

type ExpenseRepo interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	List(ctx context.Context) ([]*domain.Expense, error)
	Merge(ctx context.Context, id string, patch domain.ExpensePatch) error
	Delete(ctx context.Context, id string) error
}
