package service

import (
	"context"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/repository"
)

type projectService struct {
	base
}

func NewProjectService(store Store, opts ...Option) ProjectService {
	return &projectService{base: newBase(store, opts)}
}

func (s *projectService) GetOnDevelopment(ctx context.Context, id string) (*domain.OnDevelopmentProject, error) {
	p, err := repository.NewOnDevelopmentRepo(s.store).GetByID(ctx, id)
	return p, toAppError(err)
}

func (s *projectService) ListOnDevelopment(ctx context.Context) ([]*domain.OnDevelopmentProject, error) {
	return repository.NewOnDevelopmentRepo(s.store).List(ctx)
}

// UpdateOnDevelopment merges the provided fields. The merged record is
// validated before anything is written.
func (s *projectService) UpdateOnDevelopment(ctx context.Context, id string, patch domain.OnDevelopmentPatch) (updated *domain.OnDevelopmentProject, err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "ongoing-update", startedAt, fields, err) }()

	err = s.write(ctx, "ongoing-update", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewOnDevelopmentRepo(tx)
			current, err := repo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			patch.Apply(current)
			if err := current.Validate(); err != nil {
				return err
			}
			if err := repo.Merge(ctx, id, patch); err != nil {
				return err
			}
			updated = current
			return nil
		})
	})
	if err != nil {
		return nil, toAppError(err)
	}
	return updated, nil
}

func (s *projectService) DeleteOnDevelopment(ctx context.Context, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "ongoing-delete", startedAt, fields, err) }()

	err = s.write(ctx, "ongoing-delete", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewOnDevelopmentRepo(tx)
			if _, err := repo.GetByID(ctx, id); err != nil {
				return err
			}
			return repo.Delete(ctx, id)
		})
	})
	return toAppError(err)
}

func (s *projectService) GetCompleted(ctx context.Context, id string) (*domain.CompletedProject, error) {
	p, err := repository.NewCompletedRepo(s.store).GetByID(ctx, id)
	return p, toAppError(err)
}

func (s *projectService) ListCompleted(ctx context.Context) ([]*domain.CompletedProject, error) {
	return repository.NewCompletedRepo(s.store).List(ctx)
}

func (s *projectService) UpdateCompleted(ctx context.Context, id string, patch domain.CompletedPatch) (updated *domain.CompletedProject, err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "completed-update", startedAt, fields, err) }()

	err = s.write(ctx, "completed-update", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewCompletedRepo(tx)
			current, err := repo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			patch.Apply(current)
			if err := current.Validate(); err != nil {
				return err
			}
			if err := repo.Merge(ctx, id, patch); err != nil {
				return err
			}
			updated = current
			return nil
		})
	})
	if err != nil {
		return nil, toAppError(err)
	}
	return updated, nil
}

func (s *projectService) DeleteCompleted(ctx context.Context, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "completed-delete", startedAt, fields, err) }()

	err = s.write(ctx, "completed-delete", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewCompletedRepo(tx)
			if _, err := repo.GetByID(ctx, id); err != nil {
				return err
			}
			return repo.Delete(ctx, id)
		})
	})
	return toAppError(err)
}
