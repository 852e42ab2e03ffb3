package importer

import "github.com/alexanderramin/agencyops/internal/docstore"

// Record is one document to write. An empty ID asks the store for a new one.
type Record struct {
	Collection docstore.Collection
	ID         string
	Data       any
}

// Records flattens the bundle in collection order, keeping each
// collection's input order.
func (b *Bundle) Records() []Record {
	out := make([]Record, 0, b.Count())
	for i := range b.UpcomingProjects {
		p := &b.UpcomingProjects[i]
		out = append(out, Record{docstore.UpcomingProjects, p.ID, p})
	}
	for i := range b.OnDevelopmentProjects {
		p := &b.OnDevelopmentProjects[i]
		out = append(out, Record{docstore.OnDevelopmentProjects, p.ID, p})
	}
	for i := range b.CompletedProjects {
		p := &b.CompletedProjects[i]
		out = append(out, Record{docstore.CompletedProjects, p.ID, p})
	}
	for i := range b.OperationalBudgets {
		r := &b.OperationalBudgets[i]
		out = append(out, Record{docstore.OperationalBudgets, r.ID, r})
	}
	for i := range b.Expenses {
		e := &b.Expenses[i]
		out = append(out, Record{docstore.Expenses, e.ID, e})
	}
	return out
}
