package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const gaugeWidth = 30

// FormatDashboard renders the financial summary and lifecycle counts.
func FormatDashboard(v app.DashboardView, money Money) string {
	s := v.Summary
	var b strings.Builder

	if v.Partial() {
		names := make([]string, len(v.Pending))
		for i, c := range v.Pending {
			names[i] = string(c)
		}
		b.WriteString(StyleYellow.Render("Loading: "+strings.Join(names, ", ")) + "\n\n")
	}

	totals := RenderTable(
		[]string{"BUDGET", "AMOUNT"},
		[][]string{
			{"Upcoming projects", money.Format(s.ProjectBudgetTotal)},
			{"Operational", money.Format(s.OperationalBudgetTotal)},
			{Bold("Total budget"), Bold(money.Format(s.TotalBudget))},
			{"Expenses", money.Format(s.TotalExpenses)},
			{Bold("Remaining"), remaining(s.RemainingBudget, money)},
		},
		1,
	)
	b.WriteString(totals)
	b.WriteString("\n")

	b.WriteString(Header("Utilization") + "\n")
	b.WriteString(RenderGauge(s.GaugePct(), s.Band(), gaugeWidth))
	switch {
	case s.Overspent() && s.TotalBudget > 0:
		b.WriteString("  " + StyleRed.Render(money.Percent(s.UtilizationPct)+" of budget spent"))
	case s.Overspent():
		b.WriteString("  " + StyleRed.Render("spending with no budget"))
	}
	b.WriteString("\n\n")

	b.WriteString(Header("Expenses by category") + "\n")
	if len(s.ExpenseByCategory) == 0 {
		b.WriteString(Dim("No expenses recorded.") + "\n")
	} else {
		rows := make([][]string, 0, len(s.ExpenseByCategory))
		for _, c := range s.ExpenseByCategory {
			rows = append(rows, []string{c.Label, money.Format(c.Amount)})
		}
		b.WriteString(RenderTable([]string{"CATEGORY", "AMOUNT"}, rows, 1))
	}
	b.WriteString("\n")

	b.WriteString(Header("Allocation") + "\n")
	if len(s.Allocation) == 0 {
		b.WriteString(Dim("No budget allocated.") + "\n")
	} else {
		for _, a := range s.Allocation {
			share := 0.0
			if s.TotalBudget > 0 {
				share = a.Amount / s.TotalBudget * 100
			}
			b.WriteString(fmt.Sprintf("%-20s %s  %s\n", a.Label, money.Format(a.Amount), Dim(money.Percent(share))))
		}
	}
	b.WriteString("\n")

	b.WriteString(Header("Projects") + "\n")
	b.WriteString(fmt.Sprintf("Upcoming %d   On development %d   Completed %d\n",
		v.Counts.Upcoming, v.Counts.OnDevelopment, v.Counts.Completed))
	if v.Counts.OnDevelopment > 0 {
		parts := make([]string, 0, 3)
		for _, h := range []domain.Health{domain.HealthGreen, domain.HealthYellow, domain.HealthRed} {
			parts = append(parts, HealthColor(h).Render(fmt.Sprintf("● %s %d", h, v.Health[h])))
		}
		line := strings.Join(parts, "   ")
		if v.Blocked > 0 {
			line += "   " + StyleRed.Render(fmt.Sprintf("%d blocked", v.Blocked))
		}
		b.WriteString(line + "\n")
	}

	return RenderBox("Dashboard", strings.TrimRight(b.String(), "\n"))
}

func remaining(v float64, money Money) string {
	if v < 0 {
		return StyleRed.Bold(true).Render(money.Format(v))
	}
	return Bold(money.Format(v))
}

// FormatWatchFooter renders the generated-at line under the live dashboard.
func FormatWatchFooter(v app.DashboardView, hints string) string {
	stamp := Dim("updated " + v.GeneratedAt.Local().Format("15:04:05"))
	return lipgloss.JoinHorizontal(lipgloss.Top, stamp, "   ", Dim(hints))
}
