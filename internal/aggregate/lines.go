package aggregate

import "github.com/alexanderramin/agencyops/internal/domain"

type LineKind string

const (
	LineProject     LineKind = "Project"
	LineOperational LineKind = "Operational"
)

// BudgetLine is one row of the combined budget ledger.
type BudgetLine struct {
	ID     string
	Kind   LineKind
	Name   string
	Amount float64
	// Source is the client for project lines and the category for
	// operational lines.
	Source string
	Date   domain.Date
}

// BudgetLines lists project budgets followed by operational budgets, each in
// input order.
func BudgetLines(projects []domain.UpcomingProject, operational []domain.OperationalBudget) []BudgetLine {
	lines := make([]BudgetLine, 0, len(projects)+len(operational))
	for _, p := range projects {
		lines = append(lines, BudgetLine{
			ID:     p.ID,
			Kind:   LineProject,
			Name:   p.Name,
			Amount: p.Budget,
			Source: p.Client,
			Date:   p.StartDate,
		})
	}
	for _, b := range operational {
		lines = append(lines, BudgetLine{
			ID:     b.ID,
			Kind:   LineOperational,
			Name:   b.Name,
			Amount: b.Amount,
			Source: b.Category,
			Date:   b.Date,
		})
	}
	return lines
}
