package cli

import (
	"fmt"

	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/spf13/cobra"
)

func newCompletedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "completed",
		Aliases: []string{"done"},
		Short:   "Manage completed projects",
	}

	cmd.AddCommand(
		newCompletedListCmd(app),
		newCompletedEditCmd(app),
		newCompletedRemoveCmd(app),
	)

	return cmd
}

func newCompletedListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List completed projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.ListCompleted(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed projects.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompletedList(projects))
			return nil
		},
	}
}

func newCompletedEditCmd(app *App) *cobra.Command {
	var name, manager, completed, delivered, billing, deployment, review string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update fields of a completed project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCompletedID(ctx, app, args[0])
			if err != nil {
				return err
			}

			b := &patchBuilder{flags: cmd.Flags()}
			patch := domain.CompletedPatch{
				Name:              stringField(b, "name", name),
				Manager:           stringField(b, "manager", manager),
				CompletionDate:    dateField(b, "completed", completed),
				FinalDeliveryDate: dateField(b, "delivered", delivered),
				BillingStatus:     enumField(b, "billing", billing, parseBilling),
				DeploymentStatus:  enumField(b, "deployment", deployment, parseDeployment),
				ReviewStatus:      enumField(b, "review", review, parseReview),
			}
			if err := b.done(); err != nil {
				return err
			}

			p, err := app.Projects.UpdateCompleted(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&manager, "manager", "", "Project manager")
	cmd.Flags().StringVar(&completed, "completed", "", "Completion date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&delivered, "delivered", "", "Final delivery date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&billing, "billing", "", "Paid, Invoice Sent or Pending")
	cmd.Flags().StringVar(&deployment, "deployment", "", "Live or Staging")
	cmd.Flags().StringVar(&review, "review", "", "Completed, Pending or Scheduled")

	return cmd
}

func newCompletedRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a completed project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveCompletedID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetCompleted(ctx, id)
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, app, yes, fmt.Sprintf("Remove %s?", p.Name), "This cannot be undone.")
			if err != nil || !ok {
				return err
			}
			if err := app.Projects.DeleteCompleted(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
