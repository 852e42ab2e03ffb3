package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/agencyops/internal/domain"
	"github.com/spf13/pflag"
)

// parseEnum matches s case-insensitively against the allowed values.
func parseEnum[T ~string](field, s string, allowed ...T) (T, error) {
	for _, v := range allowed {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	names := make([]string, len(allowed))
	for i, v := range allowed {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q (use one of: %s)", field, s, strings.Join(names, ", "))
}

func parseUpcomingPriority(s string) (domain.UpcomingPriority, error) {
	return parseEnum("priority", s, domain.UpcomingCritical, domain.UpcomingHigh, domain.UpcomingMedium, domain.UpcomingLow)
}

func parseDevelopmentPriority(s string) (domain.DevelopmentPriority, error) {
	return parseEnum("priority", s, domain.DevelopmentHigh, domain.DevelopmentMedium, domain.DevelopmentLow)
}

func parseUpcomingStatus(s string) (domain.UpcomingStatus, error) {
	return parseEnum("status", s, domain.ValidUpcomingStatuses...)
}

func parseHealth(s string) (domain.Health, error) {
	return parseEnum("health", s, domain.HealthGreen, domain.HealthYellow, domain.HealthRed)
}

func parseBilling(s string) (domain.BillingStatus, error) {
	return parseEnum("billing status", s, domain.BillingPaid, domain.BillingInvoiceSent, domain.BillingPending)
}

func parseDeployment(s string) (domain.DeploymentStatus, error) {
	return parseEnum("deployment status", s, domain.DeploymentLive, domain.DeploymentStaging)
}

func parseReview(s string) (domain.ReviewStatus, error) {
	return parseEnum("review status", s, domain.ReviewCompleted, domain.ReviewPending, domain.ReviewScheduled)
}

func parsePayment(s string) (domain.PaymentType, error) {
	return parseEnum("payment type", s, domain.PaymentCash, domain.PaymentOnline)
}

// patchBuilder collects optional patch fields from flags the user actually
// set, keeping the first parse error.
type patchBuilder struct {
	flags *pflag.FlagSet
	err   error
	set   int
}

func (b *patchBuilder) changed(flag string) bool {
	if b.err != nil || !b.flags.Changed(flag) {
		return false
	}
	b.set++
	return true
}

func (b *patchBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// done reports the first error, or an error when no field was given.
func (b *patchBuilder) done() error {
	if b.err != nil {
		return b.err
	}
	if b.set == 0 {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}
	return nil
}

func stringField(b *patchBuilder, flag, value string) *string {
	if !b.changed(flag) {
		return nil
	}
	return &value
}

func floatField(b *patchBuilder, flag string, value float64) *float64 {
	if !b.changed(flag) {
		return nil
	}
	return &value
}

func intField(b *patchBuilder, flag string, value int) *int {
	if !b.changed(flag) {
		return nil
	}
	return &value
}

func dateField(b *patchBuilder, flag, value string) *domain.Date {
	if !b.changed(flag) {
		return nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		b.fail(fmt.Errorf("--%s: %w", flag, err))
		return nil
	}
	return &d
}

func teamField(b *patchBuilder, flag, value string) *domain.Team {
	if !b.changed(flag) {
		return nil
	}
	team := domain.ParseTeam(value)
	return &team
}

func enumField[T ~string](b *patchBuilder, flag, value string, parse func(string) (T, error)) *T {
	if !b.changed(flag) {
		return nil
	}
	v, err := parse(value)
	if err != nil {
		b.fail(err)
		return nil
	}
	return &v
}
