package service

import (
	"context"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/repository"
)

type intakeService struct {
	base
}

func NewIntakeService(store Store, opts ...Option) IntakeService {
	return &intakeService{base: newBase(store, opts)}
}

func (s *intakeService) Create(ctx context.Context, p *domain.UpcomingProject) (err error) {
	startedAt := s.now()
	fields := map[string]any{"collection": docstore.UpcomingProjects}
	defer func() { s.observe(ctx, "intake-create", startedAt, fields, err) }()

	if p.RequiredTeam == nil {
		p.RequiredTeam = domain.Team{}
	}
	if err = p.Validate(); err != nil {
		return toAppError(err)
	}
	err = s.write(ctx, "intake-create", func(ctx context.Context) error {
		return repository.NewUpcomingRepo(s.store).Create(ctx, p)
	})
	fields["id"] = p.ID
	return toAppError(err)
}

func (s *intakeService) GetByID(ctx context.Context, id string) (*domain.UpcomingProject, error) {
	p, err := repository.NewUpcomingRepo(s.store).GetByID(ctx, id)
	return p, toAppError(err)
}

func (s *intakeService) List(ctx context.Context) ([]*domain.UpcomingProject, error) {
	return repository.NewUpcomingRepo(s.store).List(ctx)
}

func (s *intakeService) Update(ctx context.Context, id string, patch domain.UpcomingPatch) (updated *domain.UpcomingProject, err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "intake-update", startedAt, fields, err) }()

	err = s.write(ctx, "intake-update", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewUpcomingRepo(tx)
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

func (s *intakeService) Delete(ctx context.Context, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"id": id}
	defer func() { s.observe(ctx, "intake-delete", startedAt, fields, err) }()

	err = s.write(ctx, "intake-delete", func(ctx context.Context) error {
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			repo := repository.NewUpcomingRepo(tx)
			if _, err := repo.GetByID(ctx, id); err != nil {
				return err
			}
			return repo.Delete(ctx, id)
		})
	})
	return toAppError(err)
}
