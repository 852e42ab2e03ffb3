package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
)

// DecodeUpcoming decodes an upcomingProjects document.
func DecodeUpcoming(doc docstore.Document) (*domain.UpcomingProject, error) {
	var p domain.UpcomingProject
	if err := decodeDoc(doc, &p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	return &p, nil
}

// DecodeOnDevelopment decodes an onDevelopmentProjects document.
func DecodeOnDevelopment(doc docstore.Document) (*domain.OnDevelopmentProject, error) {
	var p domain.OnDevelopmentProject
	if err := decodeDoc(doc, &p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	return &p, nil
}

// DecodeCompleted decodes a completedProjects document.
func DecodeCompleted(doc docstore.Document) (*domain.CompletedProject, error) {
	var p domain.CompletedProject
	if err := decodeDoc(doc, &p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	return &p, nil
}

// DocUpcomingRepo implements UpcomingProjectRepo over the document store.
type DocUpcomingRepo struct {
	docs docstore.Docs
}

func NewUpcomingRepo(docs docstore.Docs) *DocUpcomingRepo {
	return &DocUpcomingRepo{docs: docs}
}

// Create stores p under a new id and sets p.ID.
func (r *DocUpcomingRepo) Create(ctx context.Context, p *domain.UpcomingProject) error {
	id, err := r.docs.Create(ctx, docstore.UpcomingProjects, p)
	if err != nil {
		return fmt.Errorf("creating upcoming project: %w", err)
	}
	p.ID = id
	return nil
}

func (r *DocUpcomingRepo) GetByID(ctx context.Context, id string) (*domain.UpcomingProject, error) {
	return getOne(ctx, r.docs, docstore.UpcomingProjects, id, DecodeUpcoming)
}

func (r *DocUpcomingRepo) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.docs, docstore.UpcomingProjects, id)
}

func (r *DocUpcomingRepo) List(ctx context.Context) ([]*domain.UpcomingProject, error) {
	return listAll(ctx, r.docs, docstore.UpcomingProjects, DecodeUpcoming)
}

func (r *DocUpcomingRepo) Merge(ctx context.Context, id string, patch domain.UpcomingPatch) error {
	return merge(ctx, r.docs, docstore.UpcomingProjects, id, patch)
}

func (r *DocUpcomingRepo) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, docstore.UpcomingProjects, id)
}

// DocOnDevelopmentRepo implements OnDevelopmentProjectRepo over the document store.
type DocOnDevelopmentRepo struct {
	docs docstore.Docs
}

func NewOnDevelopmentRepo(docs docstore.Docs) *DocOnDevelopmentRepo {
	return &DocOnDevelopmentRepo{docs: docs}
}

func (r *DocOnDevelopmentRepo) GetByID(ctx context.Context, id string) (*domain.OnDevelopmentProject, error) {
	return getOne(ctx, r.docs, docstore.OnDevelopmentProjects, id, DecodeOnDevelopment)
}

func (r *DocOnDevelopmentRepo) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.docs, docstore.OnDevelopmentProjects, id)
}

func (r *DocOnDevelopmentRepo) List(ctx context.Context) ([]*domain.OnDevelopmentProject, error) {
	return listAll(ctx, r.docs, docstore.OnDevelopmentProjects, DecodeOnDevelopment)
}

func (r *DocOnDevelopmentRepo) Put(ctx context.Context, p *domain.OnDevelopmentProject) error {
	if p.ID == "" {
		return fmt.Errorf("storing on-development project: empty id")
	}
	if err := r.docs.Replace(ctx, docstore.OnDevelopmentProjects, p.ID, p); err != nil {
		return fmt.Errorf("storing on-development project: %w", err)
	}
	return nil
}

func (r *DocOnDevelopmentRepo) Merge(ctx context.Context, id string, patch domain.OnDevelopmentPatch) error {
	return merge(ctx, r.docs, docstore.OnDevelopmentProjects, id, patch)
}

func (r *DocOnDevelopmentRepo) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, docstore.OnDevelopmentProjects, id)
}

// DocCompletedRepo implements CompletedProjectRepo over the document store.
type DocCompletedRepo struct {
	docs docstore.Docs
}

func NewCompletedRepo(docs docstore.Docs) *DocCompletedRepo {
	return &DocCompletedRepo{docs: docs}
}

func (r *DocCompletedRepo) GetByID(ctx context.Context, id string) (*domain.CompletedProject, error) {
	return getOne(ctx, r.docs, docstore.CompletedProjects, id, DecodeCompleted)
}

func (r *DocCompletedRepo) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.docs, docstore.CompletedProjects, id)
}

func (r *DocCompletedRepo) List(ctx context.Context) ([]*domain.CompletedProject, error) {
	return listAll(ctx, r.docs, docstore.CompletedProjects, DecodeCompleted)
}

func (r *DocCompletedRepo) Put(ctx context.Context, p *domain.CompletedProject) error {
	if p.ID == "" {
		return fmt.Errorf("storing completed project: empty id")
	}
	if err := r.docs.Replace(ctx, docstore.CompletedProjects, p.ID, p); err != nil {
		return fmt.Errorf("storing completed project: %w", err)
	}
	return nil
}

func (r *DocCompletedRepo) Merge(ctx context.Context, id string, patch domain.CompletedPatch) error {
	return merge(ctx, r.docs, docstore.CompletedProjects, id, patch)
}

func (r *DocCompletedRepo) Delete(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, docstore.CompletedProjects, id)
}

var (
	_ UpcomingProjectRepo      = (*DocUpcomingRepo)(nil)
	_ OnDevelopmentProjectRepo = (*DocOnDevelopmentRepo)(nil)
	_ CompletedProjectRepo     = (*DocCompletedRepo)(nil)
)
