package aggregate

import (
	"testing"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/stretchr/testify/assert"
)

func projects(budgets ...float64) []domain.UpcomingProject {
	out := []domain.UpcomingProject{}
	for _, b := range budgets {
		out = append(out, domain.UpcomingProject{Budget: b})
	}
	return out
}

func operational(amounts ...float64) []domain.OperationalBudget {
	out := []domain.OperationalBudget{}
	for _, a := range amounts {
		out = append(out, domain.OperationalBudget{Amount: a})
	}
	return out
}

func expense(category string, amount float64) domain.Expense {
	return domain.Expense{Category: category, Amount: amount}
}

func TestCompute_WorkedExample(t *testing.T) {
	got := Compute(Sources{
		Upcoming:    projects(75000, 120000, 60000),
		Operational: operational(5000),
		Expenses:    []domain.Expense{expense("HOSTING", 2000), expense("MARKETING", 3000)},
	})

	assert.Equal(t, 255000.0, got.ProjectBudgetTotal)
	assert.Equal(t, 5000.0, got.OperationalBudgetTotal)
	assert.Equal(t, 260000.0, got.TotalBudget)
	assert.Equal(t, 5000.0, got.TotalExpenses)
	assert.Equal(t, 2.0, got.UtilizationPct)
	assert.Equal(t, 255000.0, got.RemainingBudget)
	assert.False(t, got.Partial())
	assert.False(t, got.Overspent())
	assert.Equal(t, []CategoryAmount{
		{Label: AllocationProjects, Amount: 255000},
		{Label: AllocationOperational, Amount: 5000},
	}, got.Allocation)
}

func TestCompute_EmptySources(t *testing.T) {
	got := Compute(Sources{
		Upcoming:    []domain.UpcomingProject{},
		Operational: []domain.OperationalBudget{},
		Expenses:    []domain.Expense{},
	})

	assert.Equal(t, 0.0, got.TotalBudget)
	assert.Equal(t, 0.0, got.UtilizationPct)
	assert.Empty(t, got.ExpenseByCategory)
	assert.Empty(t, got.Allocation)
	assert.False(t, got.Partial())
}

func TestCompute_ZeroBudgetGuardsDivision(t *testing.T) {
	got := Compute(Sources{
		Upcoming:    projects(),
		Operational: operational(),
		Expenses:    []domain.Expense{expense("Rent", 1200)},
	})

	assert.Equal(t, 0.0, got.UtilizationPct)
	assert.Equal(t, -1200.0, got.RemainingBudget)
	assert.True(t, got.Overspent())
}

func TestCompute_PartialLoad(t *testing.T) {
	got := Compute(Sources{
		Operational: operational(1000),
	})

	assert.True(t, got.Partial())
	assert.Equal(t, []docstore.Collection{docstore.UpcomingProjects, docstore.Expenses}, got.Pending)
	assert.Equal(t, 1000.0, got.TotalBudget)
	assert.Equal(t, 0.0, got.TotalExpenses)
	assert.Equal(t, []CategoryAmount{{Label: AllocationOperational, Amount: 1000}}, got.Allocation)
}

func TestCompute_RemainingInvariant(t *testing.T) {
	tests := []struct {
		name     string
		budgets  []float64
		expenses []float64
	}{
		{"under", []float64{100, 200}, []float64{50}},
		{"exact", []float64{100}, []float64{60, 40}},
		{"over", []float64{100}, []float64{90, 55}},
		{"no budget", nil, []float64{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exp []domain.Expense
			for _, a := range tt.expenses {
				exp = append(exp, expense("X", a))
			}
			got := Compute(Sources{Upcoming: projects(tt.budgets...), Operational: operational(), Expenses: exp})
			assert.Equal(t, got.TotalBudget-got.TotalExpenses, got.RemainingBudget)
		})
	}
}

func TestGaugeClamp(t *testing.T) {
	got := Compute(Sources{
		Upcoming:    projects(100),
		Operational: operational(),
		Expenses:    []domain.Expense{expense("Hosting", 145)},
	})

	assert.Equal(t, 145.0, got.UtilizationPct)
	assert.Equal(t, 100.0, got.GaugePct())
	assert.Equal(t, -45.0, got.RemainingBudget)
	assert.Equal(t, BandCritical, got.Band())
}

func TestBand(t *testing.T) {
	tests := []struct {
		pct  float64
		want Band
	}{
		{0, BandNormal},
		{60, BandNormal},
		{61, BandWarning},
		{85, BandWarning},
		{86, BandCritical},
		{300, BandCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Summary{UtilizationPct: tt.pct}.Band(), "pct %v", tt.pct)
	}
}

func TestUtilizationPct_Rounds(t *testing.T) {
	assert.Equal(t, 33.0, UtilizationPct(1, 3))
	assert.Equal(t, 67.0, UtilizationPct(2, 3))
	assert.Equal(t, 1.0, UtilizationPct(5, 1000))
	assert.Equal(t, 0.0, UtilizationPct(4, 1000))
	assert.Equal(t, 0.0, UtilizationPct(10, -5))
}

func TestExpenseBreakdown(t *testing.T) {
	got := ExpenseBreakdown([]domain.Expense{
		expense("MARKETING", 1000),
		expense("HOSTING", 500),
		expense("MARKETING", 300),
	})

	assert.Equal(t, []CategoryAmount{
		{Label: "MARKETING", Amount: 1300},
		{Label: "HOSTING", Amount: 500},
	}, got)
}

func TestExpenseBreakdown_TiesSortByLabel(t *testing.T) {
	got := ExpenseBreakdown([]domain.Expense{expense("b", 10), expense("a", 10), expense("c", 20)})

	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].Label, got[1].Label, got[2].Label})
}

func TestAllocationSplit_OmitsZero(t *testing.T) {
	assert.Equal(t, []CategoryAmount{{Label: AllocationProjects, Amount: 10}}, AllocationSplit(10, 0))
	assert.Empty(t, AllocationSplit(0, 0))
}

func TestBudgetLines(t *testing.T) {
	lines := BudgetLines(
		[]domain.UpcomingProject{{ID: "p1", Name: "Portal", Client: "Acme", Budget: 500, StartDate: domain.MustParseDate("2026-11-01")}},
		[]domain.OperationalBudget{{ID: "o1", Name: "Office rent", Category: "Rent", Amount: 40, Date: domain.MustParseDate("2026-10-01")}},
	)

	assert.Equal(t, []BudgetLine{
		{ID: "p1", Kind: LineProject, Name: "Portal", Amount: 500, Source: "Acme", Date: domain.MustParseDate("2026-11-01")},
		{ID: "o1", Kind: LineOperational, Name: "Office rent", Amount: 40, Source: "Rent", Date: domain.MustParseDate("2026-10-01")},
	}, lines)
}
