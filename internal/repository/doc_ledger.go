package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
)

func DecodeOperationalBudget(doc docstore.Document) (*domain.OperationalBudget, error) {
	var b domain.OperationalBudget
	if err := decodeDoc(doc, &b); err != nil {
		return nil, err
	}
	b.ID = doc.ID
	return &b, nil
}

func DecodeExpense(doc docstore.Document) (*domain.Expense, error) {
	var e domain.Expense
	if err := decodeDoc(doc, &e); err != nil {
		return nil, err
	}
	e.ID = doc.ID
	return &e, nil
}

// DocOperationalBudgetRepo implements OperationalBudgetRepo over the document store.
type DocOperationalBudgetRepo struct {
	docs docstore.Docs
}

func NewOperationalBudgetRepo(docs docstore.Docs) *DocOperationalBudgetRepo {
	return &DocOperationalBudgetRepo{docs: docs}
}

func (r *DocOperationalBudgetRepo) Create(ctx context.Context, b *domain.OperationalBudget) error {
	id, err := r.docs.Create(ctx, docstore.OperationalBudgets, b)
	if err != nil {
		return fmt.Errorf("creating operational budget: %w", err)
	}
	b.ID = id
	return nil
}

func (r *DocOperationalBudgetRepo) GetByID(ctx context.Context, id string) (*domain.OperationalBudget, error) {
	return getOne(ctx, r.docs, docstore.OperationalBudgets, id, DecodeOperationalBudget)
}

func (r *DocOperationalBudgetRepo) List(ctx context.Context) ([]*domain.OperationalBudget, error) {
	return listAll(ctx, r.docs, docstore.OperationalBudgets, DecodeOperationalBudget)
}

func (r *DocOperationalBudgetRepo) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, docstore.OperationalBudgets, id)
}

// DocExpenseRepo implements ExpenseRepo over the document store.
type DocExpenseRepo struct {
	docs docstore.Docs
}

func NewExpenseRepo(docs docstore.Docs) *DocExpenseRepo {
	return &DocExpenseRepo{docs: docs}
}

func (r *DocExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	id, err := r.docs.Create(ctx, docstore.Expenses, e)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}
	e.ID = id
	return nil
}

func (r *DocExpenseRepo) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	return getOne(ctx, r.docs, docstore.Expenses, id, DecodeExpense)
}

func (r *DocExpenseRepo) List(ctx context.Context) ([]*domain.Expense, error) {
	return listAll(ctx, r.docs, docstore.Expenses, DecodeExpense)
}

func (r *DocExpenseRepo) Merge(ctx context.Context, id string, patch domain.ExpensePatch) error {
	return merge(ctx, r.docs, docstore.Expenses, id, patch)
}

func (r *DocExpenseRepo) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, docstore.Expenses, id)
}

var (
	_ OperationalBudgetRepo = (*DocOperationalBudgetRepo)(nil)
	_ ExpenseRepo           = (*DocExpenseRepo)(nil)
)
