package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/agencyops/internal/aggregate"
	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/repository"
)

type dashboardService struct {
	base
}

func NewDashboardService(store Store, opts ...Option) DashboardService {
	return &dashboardService{base: newBase(store, opts)}
}

func (s *dashboardService) Snapshot(ctx context.Context) (*app.DashboardView, error) {
	var input app.DashboardInput
	err := s.store.View(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		var err error
		input, err = loadDashboardInput(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	view := app.BuildDashboard(input, s.now().UTC())
	return &view, nil
}

// loadDashboardInput reads every collection through docs. Called inside a
// View so the collections agree with each other.
func loadDashboardInput(ctx context.Context, docs docstore.Docs) (app.DashboardInput, error) {
	upcoming, err := repository.NewUpcomingRepo(docs).List(ctx)
	if err != nil {
		return app.DashboardInput{}, fmt.Errorf("loading upcoming projects: %w", err)
	}
	operational, err := repository.NewOperationalBudgetRepo(docs).List(ctx)
	if err != nil {
		return app.DashboardInput{}, fmt.Errorf("loading operational budgets: %w", err)
	}
	expenses, err := repository.NewExpenseRepo(docs).List(ctx)
	if err != nil {
		return app.DashboardInput{}, fmt.Errorf("loading expenses: %w", err)
	}
	ongoing, err := repository.NewOnDevelopmentRepo(docs).List(ctx)
	if err != nil {
		return app.DashboardInput{}, fmt.Errorf("loading on-development projects: %w", err)
	}
	completed, err := repository.NewCompletedRepo(docs).List(ctx)
	if err != nil {
		return app.DashboardInput{}, fmt.Errorf("loading completed projects: %w", err)
	}
	return app.DashboardInput{
		Sources: aggregate.Sources{
			Upcoming:    derefAll(upcoming),
			Operational: derefAll(operational),
			Expenses:    derefAll(expenses),
		},
		OnDevelopment: derefAll(ongoing),
		Completed:     derefAll(completed),
	}, nil
}
