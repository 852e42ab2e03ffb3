package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/importer"
	"github.com/alexanderramin/agencyops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport_CreatesAndReplaces(t *testing.T) {
	store := testutil.NewTestStore(t)
	intake := NewIntakeService(store)
	svc := NewTransferService(store)
	ctx := context.Background()

	existing := testutil.NewTestUpcoming("Portal")
	require.NoError(t, intake.Create(ctx, &existing))

	renamed := existing
	renamed.Name = "Portal v2"
	ongoing := testutil.NewTestOnDevelopment("Booking")
	ongoing.ID = "dev-1"

	b := &importer.Bundle{
		UpcomingProjects:      []domain.UpcomingProject{renamed, testutil.NewTestUpcoming("Fresh")},
		OnDevelopmentProjects: []domain.OnDevelopmentProject{ongoing},
		Expenses:              []domain.Expense{testutil.NewTestExpense("Travel", 1200)},
	}

	result, err := svc.Import(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 2, result.Written[docstore.UpcomingProjects])
	assert.Equal(t, 1, result.Written[docstore.OnDevelopmentProjects])
	assert.Equal(t, 1, result.Written[docstore.Expenses])

	got, err := intake.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal v2", got.Name)

	list, err := intake.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	dev, err := NewProjectService(store).GetOnDevelopment(ctx, "dev-1")
	require.NoError(t, err)
	assert.Equal(t, "Booking", dev.Name)
}

func TestImport_InvalidBundleWritesNothing(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewTransferService(store)
	ctx := context.Background()

	bad := testutil.NewTestExpense("Travel", -5)
	b := &importer.Bundle{
		UpcomingProjects: []domain.UpcomingProject{testutil.NewTestUpcoming("Fine")},
		Expenses:         []domain.Expense{bad},
	}

	_, err := svc.Import(ctx, b)
	require.Error(t, err)
	assert.Equal(t, app.CodeValidation, app.CodeOf(err))
	assert.Contains(t, err.Error(), "expenses[0]")

	list, err := NewIntakeService(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImport_ConflictWithOtherStage(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	p := testutil.NewTestUpcoming("Portal")
	require.NoError(t, NewIntakeService(store).Create(ctx, &p))

	clash := testutil.NewTestCompleted("Portal")
	clash.ID = p.ID
	b := &importer.Bundle{
		OperationalBudgets: []domain.OperationalBudget{testutil.NewTestOperationalBudget("Rent", 100)},
		CompletedProjects:  []domain.CompletedProject{clash},
	}

	_, err := NewTransferService(store).Import(ctx, b)
	require.Error(t, err)
	assert.Equal(t, app.CodeConflict, app.CodeOf(err))

	budgets, err := NewBudgetService(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets, "a conflicting bundle must not be partially applied")
}

func TestImport_RollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	failing := &testutil.FailingUoW{DB: database, Nth: 2, Err: errors.New("disk full")}
	store := docstore.NewStore(database, failing)
	svc := NewTransferService(store, WithWritePolicy(WritePolicy{}))
	ctx := context.Background()

	b := &importer.Bundle{
		OperationalBudgets: []domain.OperationalBudget{
			testutil.NewTestOperationalBudget("Rent", 100),
			testutil.NewTestOperationalBudget("Internet", 50),
		},
	}

	_, err := svc.Import(ctx, b)
	require.Error(t, err)
	assert.Equal(t, app.CodeWriteFailed, app.CodeOf(err))

	budgets, err := NewBudgetService(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestExport_AllCollections(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	p := testutil.NewTestUpcoming("Portal")
	require.NoError(t, NewIntakeService(store).Create(ctx, &p))
	rent := testutil.NewTestOperationalBudget("Rent", 40000)
	require.NoError(t, NewBudgetService(store).Create(ctx, &rent))
	exp := testutil.NewTestExpense("Travel", 3500)
	require.NoError(t, NewExpenseService(store).Create(ctx, &exp))

	svc := NewTransferService(store)
	b, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Count())
	require.Len(t, b.UpcomingProjects, 1)
	assert.Equal(t, p, b.UpcomingProjects[0])
	assert.Equal(t, rent, b.OperationalBudgets[0])
	assert.Equal(t, exp, b.Expenses[0])
	assert.Empty(t, b.OnDevelopmentProjects)

	// Re-importing an export only replaces what is already there.
	result, err := svc.Import(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 3, result.Replaced)
}

func TestImport_ExpensesOnlyChangeDescription(t *testing.T) {
	store := testutil.NewTestStore(t)
	expenses := NewExpenseService(store)
	svc := NewTransferService(store)
	ctx := context.Background()

	hosting := testutil.NewTestExpense("Hosting", 500)
	require.NoError(t, expenses.Create(ctx, &hosting))

	tampered := hosting
	tampered.Amount = 1
	tampered.Category = "OTHER"
	_, err := svc.Import(ctx, &importer.Bundle{Expenses: []domain.Expense{tampered}})
	require.Error(t, err)
	assert.Equal(t, app.CodeConflict, app.CodeOf(err))

	got, err := expenses.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 500.0, got[0].Amount)
	assert.Equal(t, "Hosting", got[0].Category)

	described := hosting
	described.Description = "VPS renewal"
	result, err := svc.Import(ctx, &importer.Bundle{Expenses: []domain.Expense{described}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Replaced)

	got, err = expenses.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "VPS renewal", got[0].Description)
	assert.Equal(t, 500.0, got[0].Amount)
}
