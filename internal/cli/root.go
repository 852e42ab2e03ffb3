package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/readmodel"
	"github.com/alexanderramin/agencyops/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Intake    service.IntakeService
	Lifecycle service.LifecycleService
	Projects  service.ProjectService
	Budgets   service.BudgetService
	Expenses  service.ExpenseService
	Dashboard service.DashboardService
	Transfer  service.TransferService

	// Live is the subscription source for the watch and metrics commands.
	Live        readmodel.Subscriber
	Registry    *prometheus.Registry
	MetricsAddr string

	Money  formatter.Money
	Logger *slog.Logger
	Now    func() time.Time

	// IsInteractive reports whether stdin is a terminal. Confirmation
	// prompts are skipped when it returns false.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh confirmation.
	Confirm func(title, description string) (bool, error)
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// NewRootCmd creates the top-level "agencyops" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "agencyops",
		Short:         "Agency project pipeline, budgets and expenses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newUpcomingCmd(app),
		newOngoingCmd(app),
		newCompletedCmd(app),
		newBudgetCmd(app),
		newExpenseCmd(app),
		newDashboardCmd(app),
		newWatchCmd(app),
		newMetricsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
