package lifecycle

import "github.com/alexanderramin/agencyops/internal/domain"

// Complete maps an on-development project onto a completed record dated
// today. Billing, deployment and review always start unsettled.
func Complete(p domain.OnDevelopmentProject, today domain.Date) domain.CompletedProject {
	return domain.CompletedProject{
		ID:                p.ID,
		Name:              p.Name,
		Manager:           p.Manager,
		CompletionDate:    today,
		FinalDeliveryDate: today,
		BillingStatus:     domain.BillingPending,
		DeploymentStatus:  domain.DeploymentStaging,
		ReviewStatus:      domain.ReviewScheduled,
	}
}

// Find returns the project with id from a working snapshot.
func Find(working []domain.OnDevelopmentProject, id string) (domain.OnDevelopmentProject, bool) {
	for _, p := range working {
		if p.ID == id {
			return p, true
		}
	}
	return domain.OnDevelopmentProject{}, false
}
