package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/lifecycle"
	"github.com/alexanderramin/agencyops/internal/repository"
)

type lifecycleService struct {
	base
}

func NewLifecycleService(store Store, opts ...Option) LifecycleService {
	return &lifecycleService{base: newBase(store, opts)}
}

// existsElsewhere fails with ErrConflict when id is already stored in any of
// the given lifecycle collections.
func existsElsewhere(ctx context.Context, tx *docstore.Tx, id string, stages ...lifecycle.Stage) error {
	for _, stage := range stages {
		var (
			ok  bool
			err error
		)
		switch stage {
		case lifecycle.StageUpcoming:
			ok, err = repository.NewUpcomingRepo(tx).Exists(ctx, id)
		case lifecycle.StageOnDevelopment:
			ok, err = repository.NewOnDevelopmentRepo(tx).Exists(ctx, id)
		case lifecycle.StageCompleted:
			ok, err = repository.NewCompletedRepo(tx).Exists(ctx, id)
		}
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("project %q already in %s: %w", id, stage.Collection(), domain.ErrConflict)
		}
	}
	return nil
}

// checkTransition guards moving id from one stage to another. The move must be
// a forward lifecycle step and id must not already be stored in any stage
// after from.
func checkTransition(ctx context.Context, tx *docstore.Tx, id string, from, to lifecycle.Stage) error {
	if from.Terminal() {
		return fmt.Errorf("project %q is %s and cannot move: %w", id, from, domain.ErrConflict)
	}
	if !lifecycle.CanTransition(from, to) {
		return fmt.Errorf("project %q cannot move from %s to %s: %w", id, from, to, domain.ErrConflict)
	}
	ahead := lifecycle.Stages[slices.Index(lifecycle.Stages, from)+1:]
	return existsElsewhere(ctx, tx, id, ahead...)
}

func (s *lifecycleService) Promote(ctx context.Context, id string) (promoted *domain.OnDevelopmentProject, err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "promote", startedAt, fields, err) }()

	err = s.write(ctx, "promote", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			upcoming := repository.NewUpcomingRepo(tx)
			source, err := upcoming.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if err := checkTransition(ctx, tx, id, lifecycle.StageUpcoming, lifecycle.StageOnDevelopment); err != nil {
				return err
			}
			if err := source.Validate(); err != nil {
				return err
			}
			next, err := lifecycle.Promote(*source)
			if err != nil {
				return err
			}
			if err := next.Validate(); err != nil {
				return err
			}
			if err := repository.NewOnDevelopmentRepo(tx).Put(ctx, &next); err != nil {
				return err
			}
			if err := upcoming.Delete(ctx, id); err != nil {
				return err
			}
			promoted = &next
			return nil
		})
	})
	if err != nil {
		return nil, toAppError(err)
	}
	fields["priority"] = string(promoted.Priority)
	return promoted, nil
}

func (s *lifecycleService) Complete(ctx context.Context, id string, working []domain.OnDevelopmentProject) (completed *domain.CompletedProject, err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "complete", startedAt, fields, err) }()

	source, ok := lifecycle.Find(working, id)
	if !ok {
		fields["noop"] = true
		return nil, nil
	}
	today := domain.NewDate(s.now())

	err = s.write(ctx, "complete", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			ongoing := repository.NewOnDevelopmentRepo(tx)
			stillThere, err := ongoing.Exists(ctx, id)
			if err != nil {
				return err
			}
			if !stillThere {
				return fmt.Errorf("on-development project %q: %w", id, domain.ErrNotFound)
			}
			if err := checkTransition(ctx, tx, id, lifecycle.StageOnDevelopment, lifecycle.StageCompleted); err != nil {
				return err
			}
			done := lifecycle.Complete(source, today)
			if err := done.Validate(); err != nil {
				return err
			}
			if err := repository.NewCompletedRepo(tx).Put(ctx, &done); err != nil {
				return err
			}
			if err := ongoing.Delete(ctx, id); err != nil {
				return err
			}
			completed = &done
			return nil
		})
	})
	if err != nil {
		return nil, toAppError(err)
	}
	return completed, nil
}
