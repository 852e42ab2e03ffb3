package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/alexanderramin/agencyops/internal/importer"
	"github.com/alexanderramin/agencyops/internal/lifecycle"
	"github.com/alexanderramin/agencyops/internal/repository"
)

type transferService struct {
	base
}

func NewTransferService(store Store, opts ...Option) TransferService {
	return &transferService{base: newBase(store, opts)}
}

func (s *transferService) Import(ctx context.Context, b *importer.Bundle) (result *ImportResult, err error) {
	startedAt := s.now()
	fields := map[string]any{"records": b.Count()}
	defer func() { s.observe(ctx, "import", startedAt, fields, err) }()

	if errs := importer.Validate(b); len(errs) > 0 {
		fields["invalid"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	records := b.Records()
	err = s.write(ctx, "import", func(ctx context.Context) error {
		result = &ImportResult{Written: make(map[docstore.Collection]int)}
		return s.store.WithinTx(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			for _, rec := range records {
				if err := s.importRecord(ctx, tx, rec, result); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, toAppError(err)
	}
	fields["created"] = result.Created
	fields["replaced"] = result.Replaced
	return result, nil
}

func (s *transferService) importRecord(ctx context.Context, tx *docstore.Tx, rec importer.Record, result *ImportResult) error {
	if rec.ID == "" {
		if _, err := tx.Create(ctx, rec.Collection, rec.Data); err != nil {
			return fmt.Errorf("importing into %s: %w", rec.Collection, err)
		}
		result.Created++
		result.Written[rec.Collection]++
		return nil
	}

	if stage, ok := stageOf(rec.Collection); ok {
		var others []lifecycle.Stage
		for _, st := range lifecycle.Stages {
			if st != stage {
				others = append(others, st)
			}
		}
		if err := existsElsewhere(ctx, tx, rec.ID, others...); err != nil {
			return err
		}
	}

	_, err := tx.Get(ctx, rec.Collection, rec.ID)
	switch {
	case err == nil:
		if rec.Collection == docstore.Expenses {
			if err := checkExpenseEdit(ctx, tx, rec.Data.(*domain.Expense)); err != nil {
				return err
			}
		}
		result.Replaced++
	case errors.Is(err, docstore.ErrNotFound):
		result.Created++
	default:
		return fmt.Errorf("importing %s/%s: %w", rec.Collection, rec.ID, err)
	}
	if err := tx.Replace(ctx, rec.Collection, rec.ID, rec.Data); err != nil {
		return fmt.Errorf("importing %s/%s: %w", rec.Collection, rec.ID, err)
	}
	result.Written[rec.Collection]++
	return nil
}

// checkExpenseEdit allows a stored expense to change only its description.
func checkExpenseEdit(ctx context.Context, tx *docstore.Tx, incoming *domain.Expense) error {
	stored, err := repository.NewExpenseRepo(tx).GetByID(ctx, incoming.ID)
	if err != nil {
		return err
	}
	if !stored.Date.Equal(incoming.Date.Time) || stored.Category != incoming.Category ||
		stored.Amount != incoming.Amount || stored.PaymentType != incoming.PaymentType {
		return fmt.Errorf("expense %q: only the description of a recorded expense can change: %w", incoming.ID, domain.ErrConflict)
	}
	return nil
}

func stageOf(c docstore.Collection) (lifecycle.Stage, bool) {
	for _, st := range lifecycle.Stages {
		if st.Collection() == c {
			return st, true
		}
	}
	return "", false
}

func (s *transferService) Export(ctx context.Context) (*importer.Bundle, error) {
	var in app.DashboardInput
	err := s.store.View(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		var err error
		in, err = loadDashboardInput(ctx, tx)
		return err
	})
	if err != nil {
		return nil, toAppError(err)
	}
	return &importer.Bundle{
		UpcomingProjects:      in.Sources.Upcoming,
		OnDevelopmentProjects: in.OnDevelopment,
		CompletedProjects:     in.Completed,
		OperationalBudgets:    in.Sources.Operational,
		Expenses:              in.Sources.Expenses,
	}, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - " + e.Error())
	}
	return &app.Error{Code: app.CodeValidation, Message: b.String()}
}
