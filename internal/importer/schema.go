// Package importer reads and writes bundles: JSON files holding every
// collection, used to back up a store and to load records exported from
// another installation.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/agencyops/internal/domain"
)

// Bundle is the file format: one array per collection, keyed by the
// collection name. Records keep their ids so lifecycle moves stay traceable.
type Bundle struct {
	UpcomingProjects      []domain.UpcomingProject      `json:"upcomingProjects"`
	OnDevelopmentProjects []domain.OnDevelopmentProject `json:"onDevelopmentProjects"`
	CompletedProjects     []domain.CompletedProject     `json:"completedProjects"`
	OperationalBudgets    []domain.OperationalBudget    `json:"operationalBudgets"`
	Expenses              []domain.Expense              `json:"expenses"`
}

// Count is the total number of records in the bundle.
func (b *Bundle) Count() int {
	return len(b.UpcomingProjects) + len(b.OnDevelopmentProjects) + len(b.CompletedProjects) +
		len(b.OperationalBudgets) + len(b.Expenses)
}

// Load reads and parses a bundle file.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("parsing bundle: %w", err)
	}
	return &b, nil
}

// Encode writes b as indented JSON. Empty collections are written as [].
func (b *Bundle) Encode(w io.Writer) error {
	out := *b
	out.UpcomingProjects = nonNil(out.UpcomingProjects)
	out.OnDevelopmentProjects = nonNil(out.OnDevelopmentProjects)
	out.CompletedProjects = nonNil(out.CompletedProjects)
	out.OperationalBudgets = nonNil(out.OperationalBudgets)
	out.Expenses = nonNil(out.Expenses)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
