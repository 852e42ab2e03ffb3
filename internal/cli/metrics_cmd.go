package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/agencyops/internal/metrics"
	"github.com/alexanderramin/agencyops/internal/readmodel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newMetricsCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Serve dashboard and use-case metrics for Prometheus",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Live == nil || app.Registry == nil {
				return fmt.Errorf("metrics are not available")
			}
			if addr == "" {
				addr = app.MetricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			live := readmodel.NewDashboard(app.Live, readmodel.WithLogger(app.logger()))
			if err := app.Registry.Register(metrics.NewDashboardCollector(live)); err != nil {
				var already prometheus.AlreadyRegisteredError
				if !errors.As(err, &already) {
					return fmt.Errorf("registering dashboard collector: %w", err)
				}
			}

			runErr := make(chan error, 1)
			go func() {
				err := live.Run(ctx)
				if err != nil {
					cancel()
				}
				runErr <- err
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving metrics on %s/metrics\n", addr)
			err := metrics.Serve(ctx, addr, app.Registry, app.logger())
			cancel()
			if rerr := <-runErr; rerr != nil && err == nil {
				err = rerr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
