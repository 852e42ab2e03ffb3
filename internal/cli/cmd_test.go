package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/cli/formatter"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/service"
	"github.com/alexanderramin/agencyops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory store for CLI integration tests.
func testApp(t *testing.T) (*App, *docstore.Store) {
	t.Helper()
	store := testutil.NewTestStore(t)
	now := func() time.Time { return testNow }
	opts := []service.Option{service.WithClock(now), service.WithWritePolicy(service.WritePolicy{})}

	return &App{
		Intake:    service.NewIntakeService(store, opts...),
		Lifecycle: service.NewLifecycleService(store, opts...),
		Projects:  service.NewProjectService(store, opts...),
		Budgets:   service.NewBudgetService(store, opts...),
		Expenses:  service.NewExpenseService(store, opts...),
		Dashboard: service.NewDashboardService(store, opts...),
		Transfer:  service.NewTransferService(store, opts...),
		Live:      store,
		Money:     formatter.NewMoney("NPR", "en"),
		Now:       now,
	}, store
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func addUpcoming(t *testing.T, app *App, name string, extra ...string) string {
	t.Helper()
	args := append([]string{"upcoming", "add", "--name", name, "--client", "Acme", "--start", "2026-11-01", "--budget", "100000"}, extra...)
	_, err := executeCmd(t, app, args...)
	require.NoError(t, err)

	projects, err := app.Intake.List(context.Background())
	require.NoError(t, err)
	for _, p := range projects {
		if p.Name == name {
			return p.ID
		}
	}
	t.Fatalf("upcoming project %q not stored", name)
	return ""
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app, _ := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "agencyops")
	assert.Contains(t, output, "upcoming")
	assert.Contains(t, output, "dashboard")
}

// --- upcoming ---

func TestUpcomingAdd_ThenList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "upcoming", "add",
		"--name", "Portal", "--client", "Acme", "--start", "2026-11-01",
		"--budget", "250000", "--priority", "high", "--team", "Backend, Design")
	require.NoError(t, err)
	assert.Contains(t, out, "Added upcoming project Portal")

	projects, err := app.Intake.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, domain.UpcomingHigh, projects[0].Priority)
	assert.Equal(t, domain.StatusIntake, projects[0].Status)
	assert.Equal(t, domain.Team{"Backend", "Design"}, projects[0].RequiredTeam)

	out, err = executeCmd(t, app, "upcoming", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Portal")
	assert.Contains(t, out, "NPR 250,000.00")
}

func TestUpcomingList_Empty(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "upcoming", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No upcoming projects.")
}

func TestUpcomingAdd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing required", []string{"upcoming", "add", "--name", "X"}, "required flag"},
		{"bad date", []string{"upcoming", "add", "--name", "X", "--client", "C", "--start", "11/01/2026"}, "invalid date"},
		{"bad priority", []string{"upcoming", "add", "--name", "X", "--client", "C", "--start", "2026-11-01", "--priority", "urgent"}, "invalid priority"},
		{"negative budget", []string{"upcoming", "add", "--name", "X", "--client", "C", "--start", "2026-11-01", "--budget", "-5"}, "VALIDATION_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := testApp(t)
			_, err := executeCmd(t, app, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUpcomingEdit_OnlyChangedFlags(t *testing.T) {
	app, _ := testApp(t)
	id := addUpcoming(t, app, "Portal", "--priority", "Low")

	out, err := executeCmd(t, app, "upcoming", "edit", id[:8], "--budget", "0", "--status", "Proposal Sent")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated upcoming project Portal")

	p, err := app.Intake.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Budget)
	assert.Equal(t, domain.StatusProposalSent, p.Status)
	assert.Equal(t, domain.UpcomingLow, p.Priority, "untouched flags keep their stored value")
}

func TestUpcomingEdit_NoFlags(t *testing.T) {
	app, _ := testApp(t)
	id := addUpcoming(t, app, "Portal")

	_, err := executeCmd(t, app, "upcoming", "edit", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestUpcomingRemove_UnknownID(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "upcoming", "rm", "nope", "--yes")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpcomingRemove_DeclinedConfirmation(t *testing.T) {
	app, _ := testApp(t)
	id := addUpcoming(t, app, "Portal")

	var asked string
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(title, _ string) (bool, error) {
		asked = title
		return false, nil
	}

	out, err := executeCmd(t, app, "upcoming", "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, "Remove Portal?", asked)

	_, err = app.Intake.GetByID(context.Background(), id)
	assert.NoError(t, err, "declined removal keeps the record")
}

func TestUpcomingRemove_YesSkipsPrompt(t *testing.T) {
	app, _ := testApp(t)
	id := addUpcoming(t, app, "Portal")

	app.IsInteractive = func() bool { return true }
	app.Confirm = func(string, string) (bool, error) {
		t.Fatal("prompt shown despite --yes")
		return false, nil
	}

	out, err := executeCmd(t, app, "upcoming", "rm", id, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed upcoming project Portal")

	_, err = app.Intake.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// --- lifecycle ---

func TestPromoteThenComplete(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	id := addUpcoming(t, app, "Portal", "--priority", "Critical", "--team", "Backend")

	out, err := executeCmd(t, app, "upcoming", "promote", id, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Promoted Portal to development")
	assert.Contains(t, out, "Unassigned")

	ongoing, err := app.Projects.GetOnDevelopment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DevelopmentHigh, ongoing.Priority)
	assert.Equal(t, domain.Team{"Backend"}, ongoing.Details.AssignedTeam)

	out, err = executeCmd(t, app, "ongoing", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Portal")

	out, err = executeCmd(t, app, "ongoing", "complete", id[:8], "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Portal on 2026-10-19")

	done, err := app.Projects.GetCompleted(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.BillingPending, done.BillingStatus)

	out, err = executeCmd(t, app, "completed", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Portal")

	out, err = executeCmd(t, app, "ongoing", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects under development.")
}

func TestOngoingComplete_ConfirmationMatchesStoredStatuses(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	id := addUpcoming(t, app, "Portal")
	_, err := app.Lifecycle.Promote(ctx, id)
	require.NoError(t, err)

	var title, description string
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(tt, d string) (bool, error) {
		title, description = tt, d
		return true, nil
	}

	_, err = executeCmd(t, app, "ongoing", "complete", id)
	require.NoError(t, err)
	assert.Equal(t, "Complete Portal?", title)

	done, err := app.Projects.GetCompleted(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, description, "Billing starts as "+string(done.BillingStatus))
	assert.Contains(t, description, "deployment as "+string(done.DeploymentStatus))
	assert.Contains(t, description, "review as "+string(done.ReviewStatus))
	assert.Contains(t, description, "review as Scheduled")
}

func TestOngoingEdit_MergesDetails(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	id := addUpcoming(t, app, "Portal")
	_, err := app.Lifecycle.Promote(ctx, id)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "ongoing", "edit", id, "--health", "red", "--blockers", "2", "--phase", "Build")
	require.NoError(t, err)

	p, err := app.Projects.GetOnDevelopment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.HealthRed, p.Health)
	assert.Equal(t, 2, p.Details.Blockers)
	assert.Equal(t, "Build", p.Details.CurrentPhase)
	assert.Equal(t, "Project Initialized", p.Details.MilestoneStatus, "unspecified detail fields survive")
}

func TestOngoingEdit_InvalidProgress(t *testing.T) {
	app, _ := testApp(t)
	id := addUpcoming(t, app, "Portal")
	_, err := app.Lifecycle.Promote(context.Background(), id)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "ongoing", "edit", id, "--progress", "140")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress")
}

func TestCompletedEdit(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	id := addUpcoming(t, app, "Portal")
	promoted, err := app.Lifecycle.Promote(ctx, id)
	require.NoError(t, err)
	_, err = app.Lifecycle.Complete(ctx, id, []domain.OnDevelopmentProject{*promoted})
	require.NoError(t, err)

	_, err = executeCmd(t, app, "completed", "edit", id, "--billing", "Paid", "--deployment", "live")
	require.NoError(t, err)

	p, err := app.Projects.GetCompleted(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.BillingPaid, p.BillingStatus)
	assert.Equal(t, domain.DeploymentLive, p.DeploymentStatus)
}

// --- ledger ---

func TestBudgetAndExpenseFlow(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	addUpcoming(t, app, "Portal")

	out, err := executeCmd(t, app, "budget", "add", "--name", "Rent", "--category", "Office", "--amount", "50000")
	require.NoError(t, err)
	assert.Contains(t, out, "NPR 50,000.00")

	budgets, err := app.Budgets.List(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "2026-10-19", budgets[0].Date.String(), "date defaults to today")

	out, err = executeCmd(t, app, "budget", "lines")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Portal"), strings.Index(out, "Rent"))
	assert.Contains(t, out, "NPR 150,000.00")

	_, err = executeCmd(t, app, "expense", "add", "--category", "Cloud", "--description", "Hosting", "--amount", "60000", "--payment", "cash")
	require.NoError(t, err)

	expenses, err := app.Expenses.List(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, domain.PaymentCash, expenses[0].PaymentType)

	out, err = executeCmd(t, app, "expense", "describe", expenses[0].ID[:6], "Hosting (Q4)")
	require.NoError(t, err)
	assert.Contains(t, out, "Hosting (Q4)")

	out, err = executeCmd(t, app, "expense", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Hosting (Q4)")

	out, err = executeCmd(t, app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "NPR 150,000.00")
	assert.Contains(t, out, "NPR 90,000.00")
	assert.Contains(t, out, " 40%")

	_, err = executeCmd(t, app, "expense", "rm", expenses[0].ID, "--yes")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "budget", "rm", budgets[0].ID, "--yes")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "budget", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No operational budgets.")
}

func TestExpenseAdd_BadPayment(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "expense", "add", "--category", "Cloud", "--description", "x", "--amount", "1", "--payment", "card")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payment type")
}

func TestDashboard_JSON(t *testing.T) {
	a, _ := testApp(t)
	addUpcoming(t, a, "Portal")

	out, err := executeCmd(t, a, "dashboard", "--json")
	require.NoError(t, err)

	var view app.DashboardView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 100000.0, view.Summary.TotalBudget)
	assert.Equal(t, 1, view.Counts.Upcoming)
	assert.False(t, view.Partial())
}

// --- resolve ---

func TestResolveID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz"}

	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{"abc123", "abc123", ""},
		{"abd", "abd456", ""},
		{"ab", "", "ambiguous"},
		{"q", "", "not found"},
		{"  ", "", "required"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := resolveID("budget", tt.input, ids)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
