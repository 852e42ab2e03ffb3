package formatter

import (
	"github.com/alexanderramin/agencyops/internal/aggregate"
	"github.com/alexanderramin/agencyops/internal/domain"
)

func FormatBudgetList(budgets []*domain.OperationalBudget, money Money) string {
	headers := []string{"ID", "NAME", "CATEGORY", "DATE", "AMOUNT"}
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, []string{
			TruncID(b.ID),
			Bold(b.Name),
			b.Category,
			OrDash(b.Date.String()),
			money.Format(b.Amount),
		})
	}
	return RenderBox("Operational Budgets", RenderTable(headers, rows, 4))
}

func FormatExpenseList(expenses []*domain.Expense, money Money) string {
	headers := []string{"ID", "DATE", "CATEGORY", "DESCRIPTION", "PAYMENT", "AMOUNT"}
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			TruncID(e.ID),
			OrDash(e.Date.String()),
			e.Category,
			e.Description,
			Dim(string(e.PaymentType)),
			money.Format(e.Amount),
		})
	}
	return RenderBox("Expenses", RenderTable(headers, rows, 5))
}

// FormatBudgetLines renders the combined ledger with a total row.
func FormatBudgetLines(lines []aggregate.BudgetLine, money Money) string {
	headers := []string{"TYPE", "NAME", "CLIENT/CATEGORY", "DATE", "AMOUNT"}
	rows := make([][]string, 0, len(lines)+1)
	var total float64
	for _, l := range lines {
		kind := StyleBlue.Render(string(l.Kind))
		if l.Kind == aggregate.LineOperational {
			kind = StylePurple.Render(string(l.Kind))
		}
		rows = append(rows, []string{
			kind,
			l.Name,
			OrDash(l.Source),
			OrDash(l.Date.String()),
			money.Format(l.Amount),
		})
		total += l.Amount
	}
	rows = append(rows, []string{Bold("Total"), "", "", "", Bold(money.Format(total))})
	return RenderBox("Budget Lines", RenderTable(headers, rows, 4))
}
