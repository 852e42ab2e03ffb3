package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/lifecycle"
	"github.com/alexanderramin/agencyops/internal/repository"
	"github.com/alexanderramin/agencyops/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUpcoming(t *testing.T, store Store, opts ...testutil.UpcomingOption) domain.UpcomingProject {
	t.Helper()
	p := testutil.NewTestUpcoming("", opts...)
	require.NoError(t, repository.NewUpcomingRepo(store).Create(context.Background(), &p))
	return p
}

func seedOnDevelopment(t *testing.T, store Store, id string) domain.OnDevelopmentProject {
	t.Helper()
	p := testutil.NewTestOnDevelopment("")
	p.ID = id
	require.NoError(t, repository.NewOnDevelopmentRepo(store).Put(context.Background(), &p))
	return p
}

func TestPromote_MovesProject(t *testing.T) {
	store := testutil.NewTestStore(t)
	obs := &recordingObserver{}
	svc := NewLifecycleService(store, WithObserver(obs), WithClock(fixedClock()))
	ctx := context.Background()

	up := seedUpcoming(t, store, testutil.WithPriority(domain.UpcomingCritical), testutil.WithBudget(120000))

	dev, err := svc.Promote(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, up.ID, dev.ID)
	assert.Equal(t, 0, dev.Progress)
	assert.Equal(t, domain.HealthGreen, dev.Health)
	assert.Equal(t, domain.DevelopmentHigh, dev.Priority)
	assert.Equal(t, 120000.0, dev.Details.TimeBudgeted)

	_, err = repository.NewUpcomingRepo(store).GetByID(ctx, up.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := repository.NewOnDevelopmentRepo(store).GetByID(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, *dev, *stored)

	ev := obs.last(t)
	assert.Equal(t, "promote", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, up.ID, ev.Fields["id"])
}

func TestPromote_Twice(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewLifecycleService(store)
	ctx := context.Background()

	up := seedUpcoming(t, store)
	_, err := svc.Promote(ctx, up.ID)
	require.NoError(t, err)

	_, err = svc.Promote(ctx, up.ID)
	assert.Equal(t, app.CodeNotFound, app.CodeOf(err))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := repository.NewOnDevelopmentRepo(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPromote_ConflictLeavesBothUntouched(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewLifecycleService(store)
	ctx := context.Background()

	up := seedUpcoming(t, store)
	existing := seedOnDevelopment(t, store, up.ID)

	_, err := svc.Promote(ctx, up.ID)
	assert.Equal(t, app.CodeConflict, app.CodeOf(err))

	_, err = repository.NewUpcomingRepo(store).GetByID(ctx, up.ID)
	assert.NoError(t, err)
	stored, err := repository.NewOnDevelopmentRepo(store).GetByID(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.Name, stored.Name)
}

func TestPromote_InvalidStoredRecord(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewLifecycleService(store)
	ctx := context.Background()

	require.NoError(t, store.Replace(ctx, docstore.UpcomingProjects, "bad", map[string]any{
		"name": "Bad", "client": "Acme", "priority": "Someday", "startDate": "2026-11-01", "status": "Proposal Sent",
	}))

	_, err := svc.Promote(ctx, "bad")
	assert.Equal(t, app.CodeValidation, app.CodeOf(err))

	_, err = repository.NewUpcomingRepo(store).GetByID(ctx, "bad")
	assert.NoError(t, err)
}

func TestPromote_RollbackOnDeleteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedStore := docstore.NewStore(database, testutil.NewTestUoW(database))
	up := seedUpcoming(t, seedStore)

	failUoW := &testutil.FailingUoW{
		DB:   database,
		Nth:  1,
		Verb: "DELETE",
		Err:  fmt.Errorf("injected delete failure"),
	}
	svc := NewLifecycleService(docstore.NewStore(database, failUoW), noRetry())
	ctx := context.Background()

	_, err := svc.Promote(ctx, up.ID)
	require.Error(t, err)
	assert.Equal(t, app.CodeWriteFailed, app.CodeOf(err))
	assert.Contains(t, err.Error(), "injected delete failure")

	_, err = repository.NewUpcomingRepo(seedStore).GetByID(ctx, up.ID)
	assert.NoError(t, err, "source must survive a failed promotion")
	ok, err := repository.NewOnDevelopmentRepo(seedStore).Exists(ctx, up.ID)
	require.NoError(t, err)
	assert.False(t, ok, "destination must not exist after rollback")
}

func TestPromote_PublishesBothStagesInOneSnapshot(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewLifecycleService(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	up := seedUpcoming(t, store)
	sub, err := store.Subscribe(ctx, docstore.UpcomingProjects, docstore.OnDevelopmentProjects)
	require.NoError(t, err)
	<-sub.C()

	_, err = svc.Promote(ctx, up.ID)
	require.NoError(t, err)

	select {
	case snap := <-sub.C():
		assert.Empty(t, snap.Of(docstore.UpcomingProjects))
		dev := snap.Of(docstore.OnDevelopmentProjects)
		require.Len(t, dev, 1)
		assert.Equal(t, up.ID, dev[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot after promotion")
	}
}

func TestComplete_MovesProject(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewLifecycleService(store, WithClock(fixedClock()))
	ctx := context.Background()

	dev := seedOnDevelopment(t, store, "p-7")

	done, err := svc.Complete(ctx, "p-7", []domain.OnDevelopmentProject{dev})
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.Equal(t, "p-7", done.ID)
	assert.Equal(t, dev.Manager, done.Manager)
	assert.Equal(t, domain.MustParseDate("2026-10-19"), done.CompletionDate)
	assert.Equal(t, domain.MustParseDate("2026-10-19"), done.FinalDeliveryDate)
	assert.Equal(t, domain.BillingPending, done.BillingStatus)
	assert.Equal(t, domain.DeploymentStaging, done.DeploymentStatus)
	assert.Equal(t, domain.ReviewScheduled, done.ReviewStatus)

	ok, err := repository.NewOnDevelopmentRepo(store).Exists(ctx, "p-7")
	require.NoError(t, err)
	assert.False(t, ok)
	stored, err := repository.NewCompletedRepo(store).GetByID(ctx, "p-7")
	require.NoError(t, err)
	assert.Equal(t, *done, *stored)
}

func TestComplete_UsesSnapshotValues(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewLifecycleService(store, WithClock(fixedClock()))
	ctx := context.Background()

	dev := seedOnDevelopment(t, store, "p-1")
	snapshot := dev
	snapshot.Manager = "Gita"

	done, err := svc.Complete(ctx, "p-1", []domain.OnDevelopmentProject{snapshot})
	require.NoError(t, err)
	assert.Equal(t, "Gita", done.Manager)
}

func TestComplete_AbsentFromSnapshotIsNoop(t *testing.T) {
	store := testutil.NewTestStore(t)
	obs := &recordingObserver{}
	svc := NewLifecycleService(store, WithObserver(obs))
	ctx := context.Background()

	seedOnDevelopment(t, store, "p-1")

	done, err := svc.Complete(ctx, "p-1", nil)
	require.NoError(t, err)
	assert.Nil(t, done)

	ok, err := repository.NewOnDevelopmentRepo(store).Exists(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, true, obs.last(t).Fields["noop"])
}

func TestComplete_StaleSnapshot(t *testing.T) {
	store := testutil.NewTestStore(t)
	svc := NewLifecycleService(store)
	ctx := context.Background()

	dev := seedOnDevelopment(t, store, "p-1")
	require.NoError(t, repository.NewOnDevelopmentRepo(store).Delete(ctx, "p-1"))

	_, err := svc.Complete(ctx, "p-1", []domain.OnDevelopmentProject{dev})
	assert.Equal(t, app.CodeNotFound, app.CodeOf(err))

	list, err := repository.NewCompletedRepo(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestComplete_RollbackOnDeleteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedStore := docstore.NewStore(database, testutil.NewTestUoW(database))
	dev := seedOnDevelopment(t, seedStore, "p-1")

	failUoW := &testutil.FailingUoW{DB: database, Nth: 1, Verb: "DELETE", Err: fmt.Errorf("injected failure")}
	svc := NewLifecycleService(docstore.NewStore(database, failUoW), noRetry())
	ctx := context.Background()

	_, err := svc.Complete(ctx, "p-1", []domain.OnDevelopmentProject{dev})
	require.Error(t, err)

	ok, err := repository.NewOnDevelopmentRepo(seedStore).Exists(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repository.NewCompletedRepo(seedStore).Exists(ctx, "p-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLifecycle_FullJourney(t *testing.T) {
	store := testutil.NewTestStore(t)
	lifecycleSvc := NewLifecycleService(store, WithClock(fixedClock()))
	projects := NewProjectService(store)
	ctx := context.Background()

	up := seedUpcoming(t, store, testutil.WithPriority(domain.UpcomingLow))

	dev, err := lifecycleSvc.Promote(ctx, up.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DevelopmentLow, dev.Priority)

	_, err = projects.UpdateOnDevelopment(ctx, up.ID, domain.OnDevelopmentPatch{
		Manager:  domain.Ptr("Sita"),
		Progress: domain.Ptr(100),
	})
	require.NoError(t, err)

	working, err := projects.ListOnDevelopment(ctx)
	require.NoError(t, err)
	done, err := lifecycleSvc.Complete(ctx, up.ID, derefAll(working))
	require.NoError(t, err)
	assert.Equal(t, "Sita", done.Manager)
	assert.Equal(t, up.Name, done.Name)

	for _, c := range []docstore.Collection{docstore.UpcomingProjects, docstore.OnDevelopmentProjects} {
		list, err := store.List(ctx, c)
		require.NoError(t, err)
		assert.Empty(t, list, c)
	}
}

func TestCheckTransition(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()
	done := testutil.NewTestCompleted("Archive")
	done.ID = "p-done"
	require.NoError(t, repository.NewCompletedRepo(store).Put(ctx, &done))

	tests := []struct {
		name     string
		id       string
		from, to lifecycle.Stage
		wantErr  bool
	}{
		{"promote", "p-1", lifecycle.StageUpcoming, lifecycle.StageOnDevelopment, false},
		{"complete", "p-1", lifecycle.StageOnDevelopment, lifecycle.StageCompleted, false},
		{"skip a stage", "p-1", lifecycle.StageUpcoming, lifecycle.StageCompleted, true},
		{"backwards", "p-1", lifecycle.StageOnDevelopment, lifecycle.StageUpcoming, true},
		{"out of completed", "p-1", lifecycle.StageCompleted, lifecycle.StageUpcoming, true},
		{"already further along", "p-done", lifecycle.StageUpcoming, lifecycle.StageOnDevelopment, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.View(ctx, func(ctx context.Context, tx *docstore.Tx) error {
				return checkTransition(ctx, tx, tt.id, tt.from, tt.to)
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrConflict)
				return
			}
			assert.NoError(t, err)
		})
	}
}
