package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/agencyops/internal/aggregate"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/repository"
)

type budgetService struct {
	base
}

func NewBudgetService(store Store, opts ...Option) BudgetService {
	return &budgetService{base: newBase(store, opts)}
}

func (s *budgetService) Create(ctx context.Context, b *domain.OperationalBudget) (err error) {
	startedAt := s.now()
	fields := map[string]any{"category": b.Category}
	defer func() { s.observe(ctx, "budget-create", startedAt, fields, err) }()

	if err = b.Validate(); err != nil {
		return toAppError(err)
	}
	err = s.write(ctx, "budget-create", func(ctx context.Context) error {
		return repository.NewOperationalBudgetRepo(s.store).Create(ctx, b)
	})
	fields["id"] = b.ID
	return toAppError(err)
}

func (s *budgetService) List(ctx context.Context) ([]*domain.OperationalBudget, error) {
	return repository.NewOperationalBudgetRepo(s.store).List(ctx)
}

func (s *budgetService) Delete(ctx context.Context, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "budget-delete", startedAt, fields, err) }()

	err = s.write(ctx, "budget-delete", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewOperationalBudgetRepo(tx)
			if _, err := repo.GetByID(ctx, id); err != nil {
				return err
			}
			return repo.Delete(ctx, id)
		})
	})
	return toAppError(err)
}

func (s *budgetService) Lines(ctx context.Context) ([]aggregate.BudgetLine, error) {
	projects, err := repository.NewUpcomingRepo(s.store).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading project budgets: %w", err)
	}
	operational, err := repository.NewOperationalBudgetRepo(s.store).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading operational budgets: %w", err)
	}
	return aggregate.BudgetLines(derefAll(projects), derefAll(operational)), nil
}

type expenseService struct {
	base
}

func NewExpenseService(store Store, opts ...Option) ExpenseService {
	return &expenseService{base: newBase(store, opts)}
}

func (s *expenseService) Create(ctx context.Context, e *domain.Expense) (err error) {
	startedAt := s.now()
	fields := map[string]any{"category": e.Category}
	defer func() { s.observe(ctx, "expense-create", startedAt, fields, err) }()

	if err = e.Validate(); err != nil {
		return toAppError(err)
	}
	err = s.write(ctx, "expense-create", func(ctx context.Context) error {
		return repository.NewExpenseRepo(s.store).Create(ctx, e)
	})
	fields["id"] = e.ID
	return toAppError(err)
}

func (s *expenseService) List(ctx context.Context) ([]*domain.Expense, error) {
	return repository.NewExpenseRepo(s.store).List(ctx)
}

// UpdateDescription is the only edit an expense accepts.
func (s *expenseService) UpdateDescription(ctx context.Context, id, description string) (updated *domain.Expense, err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "expense-describe", startedAt, fields, err) }()

	patch := domain.ExpensePatch{Description: &description}
	err = s.write(ctx, "expense-describe", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewExpenseRepo(tx)
			current, err := repo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			patch.Apply(current)
			if err := current.Validate(); err != nil {
				return err
			}
			if err := repo.Merge(ctx, id, patch); err != nil {
				return err
			}
			updated = current
			return nil
		})
	})
	if err != nil {
		return nil, toAppError(err)
	}
	return updated, nil
}

func (s *expenseService) Delete(ctx context.Context, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "expense-delete", startedAt, fields, err) }()

	err = s.write(ctx, "expense-delete", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewExpenseRepo(tx)
			if _, err := repo.GetByID(ctx, id); err != nil {
				return err
			}
			return repo.Delete(ctx, id)
		})
	})
	return toAppError(err)
}
