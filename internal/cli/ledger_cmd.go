package cli

import (
	"fmt"

	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/spf13/cobra"
)

func newBudgetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage operational budgets",
	}

	cmd.AddCommand(
		newBudgetAddCmd(app),
		newBudgetListCmd(app),
		newBudgetRemoveCmd(app),
		newBudgetLinesCmd(app),
	)

	return cmd
}

// dateOrToday parses s, defaulting to today's date when it is empty.
func dateOrToday(app *App, s string) (domain.Date, error) {
	if s == "" {
		return domain.NewDate(app.now()), nil
	}
	return domain.ParseDate(s)
}

func newBudgetAddCmd(app *App) *cobra.Command {
	var name, category, date string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an operational budget allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(app, date)
			if err != nil {
				return err
			}
			b := &domain.OperationalBudget{
				Name:     name,
				Category: category,
				Amount:   amount,
				Date:     d,
			}
			if err := app.Budgets.Create(cmd.Context(), b); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added budget %s: %s [%s]\n", b.Name, app.Money.Format(b.Amount), b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Budget name")
	cmd.Flags().StringVar(&category, "category", "", "Budget category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Allocated amount")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newBudgetListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List operational budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			budgets, err := app.Budgets.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(budgets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No operational budgets.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBudgetList(budgets, app.Money))
			return nil
		},
	}
}

func newBudgetLinesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lines",
		Short: "Show project and operational budgets as one ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := app.Budgets.Lines(cmd.Context())
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No budgets.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBudgetLines(lines, app.Money))
			return nil
		},
	}
}

func newBudgetRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an operational budget",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveBudgetID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, app, yes, "Remove this budget?", id)
			if err != nil || !ok {
				return err
			}
			if err := app.Budgets.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed budget %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newExpenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"exp"},
		Short:   "Record and review expenses",
	}

	cmd.AddCommand(
		newExpenseAddCmd(app),
		newExpenseListCmd(app),
		newExpenseDescribeCmd(app),
		newExpenseRemoveCmd(app),
	)

	return cmd
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var date, category, description, payment string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateOrToday(app, date)
			if err != nil {
				return err
			}
			pt, err := parsePayment(payment)
			if err != nil {
				return err
			}
			e := &domain.Expense{
				Date:        d,
				Category:    category,
				Description: description,
				Amount:      amount,
				PaymentType: pt,
			}
			if err := app.Expenses.Create(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s expense: %s [%s]\n", e.Category, app.Money.Format(e.Amount), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&category, "category", "", "Expense category")
	cmd.Flags().StringVar(&description, "description", "", "What the money was spent on")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount spent")
	cmd.Flags().StringVar(&payment, "payment", string(domain.PaymentOnline), "CASH or ONLINE")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newExpenseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, err := app.Expenses.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(expenses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatExpenseList(expenses, app.Money))
			return nil
		},
	}
}

func newExpenseDescribeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "describe ID DESCRIPTION",
		Short: "Change an expense description",
		Long:  "Change an expense description. The description is the only field of an expense that can change after it is recorded.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveExpenseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Expenses.UpdateDescription(ctx, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated expense %s: %s\n", e.ID, e.Description)
			return nil
		},
	}
}

func newExpenseRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveExpenseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, app, yes, "Remove this expense?", id)
			if err != nil || !ok {
				return err
			}
			if err := app.Expenses.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed expense %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
