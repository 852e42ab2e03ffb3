package app

import (
	"time"

	"github.com/alexanderramin/agencyops/internal/aggregate"
	"github.com/alexanderramin/agencyops/internal/docstore"
	"github.com/alexanderramin/agencyops/internal/domain"
)

// DashboardInput is one snapshot of every collection. Nil slices are
// collections that have not loaded yet.
type DashboardInput struct {
	Sources       aggregate.Sources
	OnDevelopment []domain.OnDevelopmentProject
	Completed     []domain.CompletedProject
}

type StageCounts struct {
	Upcoming      int `json:"upcoming"`
	OnDevelopment int `json:"onDevelopment"`
	Completed     int `json:"completed"`
}

// DashboardView is what every dashboard surface renders.
type DashboardView struct {
	Summary aggregate.Summary     `json:"summary"`
	Counts  StageCounts           `json:"counts"`
	Health  map[domain.Health]int `json:"health"`
	Pending []docstore.Collection `json:"pending,omitempty"`
	// Blocked counts on-development projects with at least one blocker.
	Blocked     int       `json:"blocked"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Partial reports whether any collection was still loading.
func (v DashboardView) Partial() bool {
	return len(v.Pending) > 0
}

func BuildDashboard(in DashboardInput, at time.Time) DashboardView {
	view := DashboardView{
		Summary: aggregate.Compute(in.Sources),
		Counts: StageCounts{
			Upcoming:      len(in.Sources.Upcoming),
			OnDevelopment: len(in.OnDevelopment),
			Completed:     len(in.Completed),
		},
		Health:      make(map[domain.Health]int),
		GeneratedAt: at,
	}
	view.Pending = append(view.Pending, view.Summary.Pending...)
	if in.OnDevelopment == nil {
		view.Pending = append(view.Pending, docstore.OnDevelopmentProjects)
	}
	if in.Completed == nil {
		view.Pending = append(view.Pending, docstore.CompletedProjects)
	}
	for _, p := range in.OnDevelopment {
		view.Health[p.Health]++
		if p.Details.Blockers > 0 {
			view.Blocked++
		}
	}
	return view
}
