package domain

type UpcomingPriority string

const (
	UpcomingCritical UpcomingPriority = "Critical"
	UpcomingHigh     UpcomingPriority = "High"
	UpcomingMedium   UpcomingPriority = "Medium"
	UpcomingLow      UpcomingPriority = "Low"
)

func (p UpcomingPriority) Valid() bool {
	switch p {
	case UpcomingCritical, UpcomingHigh, UpcomingMedium, UpcomingLow:
		return true
	}
	return false
}

// DevelopmentPriority has no Critical level; see lifecycle.MapPriority.
type DevelopmentPriority string

const (
	DevelopmentHigh   DevelopmentPriority = "High"
	DevelopmentMedium DevelopmentPriority = "Medium"
	DevelopmentLow    DevelopmentPriority = "Low"
)

func (p DevelopmentPriority) Valid() bool {
	switch p {
	case DevelopmentHigh, DevelopmentMedium, DevelopmentLow:
		return true
	}
	return false
}

// UpcomingStatus is the planning stage of a pipeline project.
type UpcomingStatus string

const (
	StatusIntake           UpcomingStatus = "Idea/Intake"
	StatusDiscovery        UpcomingStatus = "Discovery In Progress"
	StatusProposalSent     UpcomingStatus = "Proposal Sent"
	StatusAwaitingApproval UpcomingStatus = "Awaiting Funding/Approval"
)

// ValidUpcomingStatuses lists planning stages in pipeline order.
var ValidUpcomingStatuses = []UpcomingStatus{StatusIntake, StatusDiscovery, StatusProposalSent, StatusAwaitingApproval}

func (s UpcomingStatus) Valid() bool {
	for _, v := range ValidUpcomingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Health string

const (
	HealthGreen  Health = "Green"
	HealthYellow Health = "Yellow"
	HealthRed    Health = "Red"
)

func (h Health) Valid() bool {
	return h == HealthGreen || h == HealthYellow || h == HealthRed
}

type BillingStatus string

const (
	BillingPaid        BillingStatus = "Paid"
	BillingInvoiceSent BillingStatus = "Invoice Sent"
	BillingPending     BillingStatus = "Pending"
)

func (s BillingStatus) Valid() bool {
	return s == BillingPaid || s == BillingInvoiceSent || s == BillingPending
}

type DeploymentStatus string

const (
	DeploymentLive    DeploymentStatus = "Live"
	DeploymentStaging DeploymentStatus = "Staging"
)

func (s DeploymentStatus) Valid() bool {
	return s == DeploymentLive || s == DeploymentStaging
}

type ReviewStatus string

const (
	ReviewCompleted ReviewStatus = "Completed"
	ReviewPending   ReviewStatus = "Pending"
	ReviewScheduled ReviewStatus = "Scheduled"
)

func (s ReviewStatus) Valid() bool {
	return s == ReviewCompleted || s == ReviewPending || s == ReviewScheduled
}

type PaymentType string

const (
	PaymentCash   PaymentType = "CASH"
	PaymentOnline PaymentType = "ONLINE"
)

func (p PaymentType) Valid() bool {
	return p == PaymentCash || p == PaymentOnline
}
