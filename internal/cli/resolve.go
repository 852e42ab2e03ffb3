package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyops/internal/domain"
)

// resolveID matches input against ids: an exact id wins, otherwise a unique
// prefix. kind names the record in error messages.
func resolveID(kind, input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q: %w", kind, input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func idsOf[T any](items []*T, id func(*T) string) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = id(it)
	}
	return ids
}

func resolveUpcomingID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Intake.List(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("upcoming project", input, idsOf(projects, func(p *domain.UpcomingProject) string { return p.ID }))
}

func resolveOngoingID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.ListOnDevelopment(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("ongoing project", input, idsOf(projects, func(p *domain.OnDevelopmentProject) string { return p.ID }))
}

func resolveCompletedID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.ListCompleted(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("completed project", input, idsOf(projects, func(p *domain.CompletedProject) string { return p.ID }))
}

func resolveBudgetID(ctx context.Context, app *App, input string) (string, error) {
	budgets, err := app.Budgets.List(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("budget", input, idsOf(budgets, func(b *domain.OperationalBudget) string { return b.ID }))
}

func resolveExpenseID(ctx context.Context, app *App, input string) (string, error) {
	expenses, err := app.Expenses.List(ctx)
	if err != nil {
		return "", err
	}
	return resolveID("expense", input, idsOf(expenses, func(e *domain.Expense) string { return e.ID }))
}
