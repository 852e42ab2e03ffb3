package cli

import (
	"fmt"

	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/lifecycle"
	"github.com/spf13/cobra"
)

func newOngoingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ongoing",
		Aliases: []string{"dev"},
		Short:   "Manage projects under development",
	}

	cmd.AddCommand(
		newOngoingListCmd(app),
		newOngoingShowCmd(app),
		newOngoingEditCmd(app),
		newOngoingCompleteCmd(app),
		newOngoingRemoveCmd(app),
	)

	return cmd
}

func newOngoingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects under development",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.ListOnDevelopment(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects under development.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOnDevelopmentList(projects, app.now()))
			return nil
		},
	}
}

func newOngoingShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project under development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveOngoingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetOnDevelopment(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOnDevelopmentDetail(p, app.now()))
			return nil
		},
	}
}

func newOngoingEditCmd(app *App) *cobra.Command {
	var (
		name, manager, deadline, health, priority string
		phase, milestone, team, notes             string
		progress, blockers                        int
		spent, budgeted                           float64
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update fields of a project under development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveOngoingID(ctx, app, args[0])
			if err != nil {
				return err
			}

			b := &patchBuilder{flags: cmd.Flags()}
			patch := domain.OnDevelopmentPatch{
				Name:     stringField(b, "name", name),
				Manager:  stringField(b, "manager", manager),
				Deadline: dateField(b, "deadline", deadline),
				Health:   enumField(b, "health", health, parseHealth),
				Progress: intField(b, "progress", progress),
				Priority: enumField(b, "priority", priority, parseDevelopmentPriority),
			}
			details := domain.DetailsPatch{
				CurrentPhase:    stringField(b, "phase", phase),
				TimeSpent:       floatField(b, "time-spent", spent),
				TimeBudgeted:    floatField(b, "time-budgeted", budgeted),
				MilestoneStatus: stringField(b, "milestone", milestone),
				Blockers:        intField(b, "blockers", blockers),
				AssignedTeam:    teamField(b, "team", team),
				StatusNotes:     stringField(b, "notes", notes),
			}
			if details != (domain.DetailsPatch{}) {
				patch.Details = &details
			}
			if err := b.done(); err != nil {
				return err
			}

			p, err := app.Projects.UpdateOnDevelopment(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&manager, "manager", "", "Project manager")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&health, "health", "", "Green, Yellow or Red")
	cmd.Flags().IntVar(&progress, "progress", 0, "Progress percentage (0-100)")
	cmd.Flags().StringVar(&priority, "priority", "", "High, Medium or Low")
	cmd.Flags().StringVar(&phase, "phase", "", "Current phase")
	cmd.Flags().Float64Var(&spent, "time-spent", 0, "Hours spent")
	cmd.Flags().Float64Var(&budgeted, "time-budgeted", 0, "Time budgeted")
	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone status")
	cmd.Flags().IntVar(&blockers, "blockers", 0, "Number of open blockers")
	cmd.Flags().StringVar(&team, "team", "", "Assigned team, comma-separated")
	cmd.Flags().StringVar(&notes, "notes", "", "Status notes")

	return cmd
}

func newOngoingCompleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a project under development as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			working, err := app.Projects.ListOnDevelopment(ctx)
			if err != nil {
				return err
			}
			id, err := resolveID("ongoing project", args[0], idsOf(working, func(p *domain.OnDevelopmentProject) string { return p.ID }))
			if err != nil {
				return err
			}

			snapshot := make([]domain.OnDevelopmentProject, len(working))
			for i, p := range working {
				snapshot[i] = *p
			}
			target, _ := lifecycle.Find(snapshot, id)
			name := target.Name
			preview := lifecycle.Complete(target, domain.NewDate(app.now()))

			ok, err := confirm(cmd, app, yes,
				fmt.Sprintf("Complete %s?", name),
				fmt.Sprintf("Billing starts as %s, deployment as %s and review as %s.",
					preview.BillingStatus, preview.DeploymentStatus, preview.ReviewStatus))
			if err != nil || !ok {
				return err
			}

			done, err := app.Lifecycle.Complete(ctx, id, snapshot)
			if err != nil {
				return err
			}
			if done == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is no longer under development; nothing to complete.\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s on %s\n", done.Name, done.CompletionDate)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newOngoingRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a project under development",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveOngoingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetOnDevelopment(ctx, id)
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, app, yes, fmt.Sprintf("Remove %s?", p.Name), "This cannot be undone.")
			if err != nil || !ok {
				return err
			}
			if err := app.Projects.DeleteOnDevelopment(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
