package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show budget totals, utilization and project counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Dashboard.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(*view, app.Money))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the dashboard as JSON")
	return cmd
}
