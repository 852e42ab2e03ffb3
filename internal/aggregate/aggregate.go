// Package aggregate derives the financial summary from the current contents
// of the upcoming project, operational budget and expense collections. All
// functions are pure; a nil input slice means the source has not loaded yet
// and contributes zero.
package aggregate

import (
	"math"
	"sort"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
)

// Allocation labels.
const (
	AllocationProjects    = "Upcoming Projects"
	AllocationOperational = "Operational"
)

// Sources is one snapshot of every contributing collection.
type Sources struct {
	Upcoming    []domain.UpcomingProject
	Operational []domain.OperationalBudget
	Expenses    []domain.Expense
}

type CategoryAmount struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type Summary struct {
	ProjectBudgetTotal     float64          `json:"projectBudgetTotal"`
	OperationalBudgetTotal float64          `json:"operationalBudgetTotal"`
	TotalBudget            float64          `json:"totalBudget"`
	TotalExpenses          float64          `json:"totalExpenses"`
	UtilizationPct         float64          `json:"utilizationPercentage"`
	RemainingBudget        float64          `json:"remainingBudget"`
	ExpenseByCategory      []CategoryAmount `json:"expenseBreakdownByCategory"`
	Allocation             []CategoryAmount `json:"budgetAllocationSplit"`
	// Pending names the collections that had not delivered a snapshot.
	Pending []docstore.Collection `json:"pending,omitempty"`
}

func Compute(src Sources) Summary {
	projects := ProjectBudgetTotal(src.Upcoming)
	operational := OperationalBudgetTotal(src.Operational)
	total := projects + operational
	expenses := TotalExpenses(src.Expenses)

	var pending []docstore.Collection
	if src.Upcoming == nil {
		pending = append(pending, docstore.UpcomingProjects)
	}
	if src.Operational == nil {
		pending = append(pending, docstore.OperationalBudgets)
	}
	if src.Expenses == nil {
		pending = append(pending, docstore.Expenses)
	}

	return Summary{
		ProjectBudgetTotal:     projects,
		OperationalBudgetTotal: operational,
		TotalBudget:            total,
		TotalExpenses:          expenses,
		UtilizationPct:         UtilizationPct(expenses, total),
		RemainingBudget:        total - expenses,
		ExpenseByCategory:      ExpenseBreakdown(src.Expenses),
		Allocation:             AllocationSplit(projects, operational),
		Pending:                pending,
	}
}

// Partial reports whether any source was still loading.
func (s Summary) Partial() bool {
	return len(s.Pending) > 0
}

// Overspent reports whether expenses exceed the total budget.
func (s Summary) Overspent() bool {
	return s.RemainingBudget < 0
}

// GaugePct is UtilizationPct clamped to [0, 100] for display.
func (s Summary) GaugePct() float64 {
	return math.Max(0, math.Min(100, s.UtilizationPct))
}

type Band string

const (
	BandNormal   Band = "normal"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

// Band classifies utilisation for the gauge colour.
func (s Summary) Band() Band {
	switch pct := s.GaugePct(); {
	case pct > 85:
		return BandCritical
	case pct > 60:
		return BandWarning
	}
	return BandNormal
}

// ProjectBudgetTotal sums the budget of every upcoming project. Promoted and
// completed projects no longer count.
func ProjectBudgetTotal(projects []domain.UpcomingProject) float64 {
	var sum float64
	for _, p := range projects {
		sum += p.Budget
	}
	return sum
}

func OperationalBudgetTotal(budgets []domain.OperationalBudget) float64 {
	var sum float64
	for _, b := range budgets {
		sum += b.Amount
	}
	return sum
}

func TotalExpenses(expenses []domain.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	return sum
}

// UtilizationPct is round(expenses/budget*100), or 0 when there is no budget.
// The result is not clamped.
func UtilizationPct(expenses, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return math.Round(expenses / budget * 100)
}

// ExpenseBreakdown groups expenses by category, largest first. Ties sort by
// category label.
func ExpenseBreakdown(expenses []domain.Expense) []CategoryAmount {
	totals := make(map[string]float64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount
	}
	out := make([]CategoryAmount, 0, len(totals))
	for label, amount := range totals {
		out = append(out, CategoryAmount{Label: label, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// AllocationSplit omits any side whose total is exactly zero.
func AllocationSplit(projects, operational float64) []CategoryAmount {
	out := make([]CategoryAmount, 0, 2)
	if projects != 0 {
		out = append(out, CategoryAmount{Label: AllocationProjects, Amount: projects})
	}
	if operational != 0 {
		out = append(out, CategoryAmount{Label: AllocationOperational, Amount: operational})
	}
	return out
}
