package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/cli"
	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/config"
	"github.com/alexanderramin/agencyops/internal/db"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/metrics"
	"github.com/alexanderramin/agencyops/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		var appErr *app.Error
		if errors.As(err, &appErr) {
			fmt.Fprintf(os.Stderr, "Error [%s]: %s\n", appErr.Code, appErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := config.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	storeOpts := []docstore.Option{docstore.WithLogger(logger)}
	// Another agencyops process may write the same file while a watch runs.
	if cfg.DB.Path != ":memory:" && cfg.Store.PollInterval > 0 {
		storeOpts = append(storeOpts, docstore.WithChangePolling(cfg.Store.PollInterval))
	}
	store := docstore.NewStore(database, uow, storeOpts...)
	defer store.Close()

	// Metrics registry shared by the use-case observer and the metrics command.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promObserver, err := metrics.NewUseCaseObserver(registry)
	if err != nil {
		return fmt.Errorf("registering use-case metrics: %w", err)
	}

	opts := []service.Option{
		service.WithObserver(service.NewSlogUseCaseObserver(logger), promObserver),
		service.WithWritePolicy(service.WritePolicy{
			Retries: cfg.Store.WriteRetries,
			Backoff: cfg.Store.RetryBackoff,
		}),
		service.WithLogger(logger),
	}

	a := &cli.App{
		Intake:    service.NewIntakeService(store, opts...),
		Lifecycle: service.NewLifecycleService(store, opts...),
		Projects:  service.NewProjectService(store, opts...),
		Budgets:   service.NewBudgetService(store, opts...),
		Expenses:  service.NewExpenseService(store, opts...),
		Dashboard: service.NewDashboardService(store, opts...),
		Transfer:  service.NewTransferService(store, opts...),

		Live:        store,
		Registry:    registry,
		MetricsAddr: cfg.Metrics.Addr,

		Money:  formatter.NewMoney(cfg.Display.Currency, cfg.Display.Locale),
		Logger: logger,
	}

	// Detect interactive terminal for confirmation prompts.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(a)
	return rootCmd.ExecuteContext(context.Background())
}
