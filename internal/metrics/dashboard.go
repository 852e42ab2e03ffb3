package metrics

import (
	"github.com/alexanderramin/agencyops/internal/app"
	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// ViewSource supplies the dashboard view to export, typically the read model.
type ViewSource interface {
	Current() app.DashboardView
}

// DashboardCollector exports the current dashboard view at scrape time.
type DashboardCollector struct {
	source ViewSource

	budget      *prometheus.Desc
	expenses    *prometheus.Desc
	remaining   *prometheus.Desc
	utilization *prometheus.Desc
	category    *prometheus.Desc
	projects    *prometheus.Desc
	health      *prometheus.Desc
	blocked     *prometheus.Desc
	partial     *prometheus.Desc
}

var _ prometheus.Collector = (*DashboardCollector)(nil)

func NewDashboardCollector(source ViewSource) *DashboardCollector {
	name := func(n string) string { return prometheus.BuildFQName(namespace, "", n) }
	return &DashboardCollector{
		source:      source,
		budget:      prometheus.NewDesc(name("budget_total"), "Budget by allocation.", []string{"allocation"}, nil),
		expenses:    prometheus.NewDesc(name("expenses_total"), "Sum of all expenses.", nil, nil),
		remaining:   prometheus.NewDesc(name("remaining_budget"), "Total budget minus expenses; negative when overspent.", nil, nil),
		utilization: prometheus.NewDesc(name("utilization_percent"), "Expenses as a rounded, unclamped percentage of total budget.", nil, nil),
		category:    prometheus.NewDesc(name("expenses_by_category"), "Expenses summed per category.", []string{"category"}, nil),
		projects:    prometheus.NewDesc(name("projects"), "Projects per lifecycle stage.", []string{"stage"}, nil),
		health:      prometheus.NewDesc(name("ongoing_projects_by_health"), "On-development projects per health.", []string{"health"}, nil),
		blocked:     prometheus.NewDesc(name("ongoing_projects_blocked"), "On-development projects with at least one blocker.", nil, nil),
		partial:     prometheus.NewDesc(name("dashboard_partial"), "1 while any collection has not loaded.", nil, nil),
	}
}

func (c *DashboardCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.budget, c.expenses, c.remaining, c.utilization, c.category, c.projects, c.health, c.blocked, c.partial} {
		ch <- d
	}
}

func (c *DashboardCollector) Collect(ch chan<- prometheus.Metric) {
	view := c.source.Current()
	s := view.Summary

	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, labels...)
	}

	gauge(c.budget, s.ProjectBudgetTotal, "projects")
	gauge(c.budget, s.OperationalBudgetTotal, "operational")
	gauge(c.budget, s.TotalBudget, "total")
	gauge(c.expenses, s.TotalExpenses)
	gauge(c.remaining, s.RemainingBudget)
	gauge(c.utilization, s.UtilizationPct)
	for _, cat := range s.ExpenseByCategory {
		gauge(c.category, cat.Amount, cat.Label)
	}
	gauge(c.projects, float64(view.Counts.Upcoming), "upcoming")
	gauge(c.projects, float64(view.Counts.OnDevelopment), "ongoing")
	gauge(c.projects, float64(view.Counts.Completed), "completed")
	for _, h := range []domain.Health{domain.HealthGreen, domain.HealthYellow, domain.HealthRed} {
		gauge(c.health, float64(view.Health[h]), string(h))
	}
	gauge(c.blocked, float64(view.Blocked))

	partial := 0.0
	if view.Partial() {
		partial = 1
	}
	gauge(c.partial, partial)
}
