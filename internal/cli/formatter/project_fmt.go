package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatUpcomingList renders pipeline projects inside a bordered box.
func FormatUpcomingList(projects []*domain.UpcomingProject, money Money) string {
	headers := []string{"ID", "NAME", "CLIENT", "PRIORITY", "STATUS", "START", "BUDGET"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			p.Client,
			PriorityBadge(string(p.Priority)),
			string(p.Status),
			OrDash(p.StartDate.String()),
			money.Format(p.Budget),
		})
	}
	return RenderBox("Upcoming Projects", RenderTable(headers, rows, 6))
}

// FormatOnDevelopmentList renders projects under development.
func FormatOnDevelopmentList(projects []*domain.OnDevelopmentProject, today time.Time) string {
	headers := []string{"ID", "NAME", "MANAGER", "HEALTH", "PROGRESS", "PHASE", "DEADLINE"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			p.Manager,
			HealthIndicator(p.Health),
			RenderProgress(p.Progress, 10),
			OrDash(p.Details.CurrentPhase),
			DeadlineStyled(p.Deadline, today),
		})
	}
	return RenderBox("On Development", RenderTable(headers, rows))
}

// FormatCompletedList renders finished projects.
func FormatCompletedList(projects []*domain.CompletedProject) string {
	headers := []string{"ID", "NAME", "MANAGER", "COMPLETED", "BILLING", "DEPLOYMENT", "REVIEW"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		billing := string(p.BillingStatus)
		if p.BillingStatus == domain.BillingPaid {
			billing = StyleGreen.Render(billing)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			p.Manager,
			OrDash(p.CompletionDate.String()),
			billing,
			string(p.DeploymentStatus),
			string(p.ReviewStatus),
		})
	}
	return RenderBox("Completed", RenderTable(headers, rows))
}

// FormatOnDevelopmentDetail renders one project under development with its
// nested details, as shown after a promotion.
func FormatOnDevelopmentDetail(p *domain.OnDevelopmentProject, today time.Time) string {
	left := strings.Join([]string{
		field("ID", p.ID),
		field("Manager", p.Manager),
		field("Priority", PriorityBadge(string(p.Priority))),
		field("Health", HealthIndicator(p.Health)),
		field("Progress", RenderProgress(p.Progress, 16)),
		field("Deadline", DeadlineStyled(p.Deadline, today)),
	}, "\n")

	d := p.Details
	right := strings.Join([]string{
		field("Phase", OrDash(d.CurrentPhase)),
		field("Milestone", OrDash(d.MilestoneStatus)),
		field("Time", fmt.Sprintf("%g / %g", d.TimeSpent, d.TimeBudgeted)),
		field("Blockers", blockers(d.Blockers)),
		field("Team", OrDash(d.AssignedTeam.String())),
		field("Notes", OrDash(d.StatusNotes)),
	}, "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return RenderBox(p.Name, body)
}

func field(label, value string) string {
	return fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%-10s", label)), value)
}

func blockers(n int) string {
	if n > 0 {
		return StyleRed.Render(fmt.Sprintf("%d", n))
	}
	return Dim("0")
}
