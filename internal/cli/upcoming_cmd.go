package cli

import (
	"fmt"

	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/spf13/cobra"
)

func newUpcomingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "upcoming",
		Aliases: []string{"up"},
		Short:   "Manage pipeline projects",
	}

	cmd.AddCommand(
		newUpcomingAddCmd(app),
		newUpcomingListCmd(app),
		newUpcomingEditCmd(app),
		newUpcomingRemoveCmd(app),
		newUpcomingPromoteCmd(app),
	)

	return cmd
}

type upcomingFlags struct {
	name, client, value, priority, start, duration, team, status, proposal string
	budget                                                                 float64
}

func (f *upcomingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.client, "client", "", "Client name")
	cmd.Flags().StringVar(&f.value, "value", "", "Business value")
	cmd.Flags().StringVar(&f.priority, "priority", string(domain.UpcomingMedium), "Critical, High, Medium or Low")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.duration, "duration", "", "Expected duration, e.g. \"3 months\"")
	cmd.Flags().Float64Var(&f.budget, "budget", 0, "Project budget")
	cmd.Flags().StringVar(&f.team, "team", "", "Required team, comma-separated")
	cmd.Flags().StringVar(&f.status, "status", string(domain.StatusIntake), "Planning status")
	cmd.Flags().StringVar(&f.proposal, "proposal", "", "Proposal link")
}

func newUpcomingAddCmd(app *App) *cobra.Command {
	var f upcomingFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pipeline project",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := domain.ParseDate(f.start)
			if err != nil {
				return err
			}
			priority, err := parseUpcomingPriority(f.priority)
			if err != nil {
				return err
			}
			status, err := parseUpcomingStatus(f.status)
			if err != nil {
				return err
			}

			p := &domain.UpcomingProject{
				Name:          f.name,
				Client:        f.client,
				BusinessValue: f.value,
				Priority:      priority,
				StartDate:     start,
				Duration:      f.duration,
				Budget:        f.budget,
				RequiredTeam:  domain.ParseTeam(f.team),
				Status:        status,
				ProposalLink:  f.proposal,
			}
			if err := app.Intake.Create(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added upcoming project %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newUpcomingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pipeline projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Intake.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No upcoming projects.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUpcomingList(projects, app.Money))
			return nil
		},
	}
}

func newUpcomingEditCmd(app *App) *cobra.Command {
	var f upcomingFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update fields of a pipeline project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveUpcomingID(ctx, app, args[0])
			if err != nil {
				return err
			}

			b := &patchBuilder{flags: cmd.Flags()}
			patch := domain.UpcomingPatch{
				Name:          stringField(b, "name", f.name),
				Client:        stringField(b, "client", f.client),
				BusinessValue: stringField(b, "value", f.value),
				Priority:      enumField(b, "priority", f.priority, parseUpcomingPriority),
				StartDate:     dateField(b, "start", f.start),
				Duration:      stringField(b, "duration", f.duration),
				Budget:        floatField(b, "budget", f.budget),
				RequiredTeam:  teamField(b, "team", f.team),
				Status:        enumField(b, "status", f.status, parseUpcomingStatus),
				ProposalLink:  stringField(b, "proposal", f.proposal),
			}
			if err := b.done(); err != nil {
				return err
			}

			p, err := app.Intake.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated upcoming project %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newUpcomingRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Remove a pipeline project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveUpcomingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Intake.GetByID(ctx, id)
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, app, yes, fmt.Sprintf("Remove %s?", p.Name), "This cannot be undone.")
			if err != nil || !ok {
				return err
			}
			if err := app.Intake.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed upcoming project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newUpcomingPromoteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "promote ID",
		Short: "Move a pipeline project into development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveUpcomingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Intake.GetByID(ctx, id)
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, app, yes,
				fmt.Sprintf("Start development of %s?", p.Name),
				"The project leaves the pipeline and its budget no longer counts toward totals.")
			if err != nil || !ok {
				return err
			}

			promoted, err := app.Lifecycle.Promote(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Promoted %s to development\n", promoted.Name)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOnDevelopmentDetail(promoted, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
