package importer

import (
	"fmt"

	"github.com/alexanderramin/agencyops/internal/docstore"
)

type validator interface {
	Validate() error
}

// Validate checks every record and the id rules before anything is written.
// It returns all problems found, each prefixed with the record's position
// such as "expenses[2]".
//
// A project id may appear in only one lifecycle collection, and ids must be
// unique within each collection. Records without an id get a fresh one on
// import.
func Validate(b *Bundle) []error {
	var errs []error

	check := func(c docstore.Collection, i int, v validator) {
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", c, i, err))
		}
	}

	projectOwner := make(map[string]docstore.Collection)
	claimProject := func(c docstore.Collection, i int, id string) {
		if id == "" {
			return
		}
		if owner, ok := projectOwner[id]; ok {
			errs = append(errs, fmt.Errorf("%s[%d]: id %q already used in %s", c, i, id, owner))
			return
		}
		projectOwner[id] = c
	}

	for i := range b.UpcomingProjects {
		check(docstore.UpcomingProjects, i, &b.UpcomingProjects[i])
		claimProject(docstore.UpcomingProjects, i, b.UpcomingProjects[i].ID)
	}
	for i := range b.OnDevelopmentProjects {
		check(docstore.OnDevelopmentProjects, i, &b.OnDevelopmentProjects[i])
		claimProject(docstore.OnDevelopmentProjects, i, b.OnDevelopmentProjects[i].ID)
	}
	for i := range b.CompletedProjects {
		check(docstore.CompletedProjects, i, &b.CompletedProjects[i])
		claimProject(docstore.CompletedProjects, i, b.CompletedProjects[i].ID)
	}

	budgetIDs := make(map[string]bool)
	for i := range b.OperationalBudgets {
		check(docstore.OperationalBudgets, i, &b.OperationalBudgets[i])
		errs = appendDuplicate(errs, budgetIDs, docstore.OperationalBudgets, i, b.OperationalBudgets[i].ID)
	}
	expenseIDs := make(map[string]bool)
	for i := range b.Expenses {
		check(docstore.Expenses, i, &b.Expenses[i])
		errs = appendDuplicate(errs, expenseIDs, docstore.Expenses, i, b.Expenses[i].ID)
	}

	return errs
}

func appendDuplicate(errs []error, seen map[string]bool, c docstore.Collection, i int, id string) []error {
	if id == "" {
		return errs
	}
	if seen[id] {
		return append(errs, fmt.Errorf("%s[%d]: duplicate id %q", c, i, id))
	}
	seen[id] = true
	return errs
}
